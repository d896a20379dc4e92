package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"siteledger/config"
	"siteledger/services"
)

func testConfig() *config.Config {
	return &config.Config{
		CompanyName:   "Test",
		DefaultCGST:   decimal.NewFromInt(9),
		DefaultSGST:   decimal.NewFromInt(9),
		InvoicePrefix: "SL",
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWordsCmd(t *testing.T) {
	out, err := run(t, NewWordsCmd(), "1,00,000.50")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(out); got != "Rupees One Lakh and Fifty Paise Only" {
		t.Errorf("output = %q", got)
	}
}

func TestWordsCmd_Invalid(t *testing.T) {
	if _, err := run(t, NewWordsCmd(), "abc"); !errors.Is(err, services.ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
	if _, err := run(t, NewWordsCmd()); err == nil {
		t.Error("expected error when amount is missing")
	}
}

func TestGSTCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "base with default rates",
			args: []string{"--amount", "100000"},
			want: []string{"₹1,00,000.00", "CGST 9%", "₹9,000.00", "₹1,18,000.00"},
		},
		{
			name: "inclusive total",
			args: []string{"--mode", "total", "--amount", "118000"},
			want: []string{"₹1,00,000.00", "₹9,000.00", "₹1,18,000.00"},
		},
		{
			name: "custom rates",
			args: []string{"--amount", "1000", "--cgst", "2.5", "--sgst", "2.5"},
			want: []string{"CGST 2.5%", "₹25.00", "₹1,050.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, NewGSTCmd(testConfig()), tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestGSTCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing amount", []string{}},
		{"bad mode", []string{"--mode", "gross", "--amount", "100"}},
		{"negative amount", []string{"--amount", "-100"}},
		{"bad rate", []string{"--amount", "100", "--cgst", "nine"}},
		{"negative rate", []string{"--amount", "100", "--sgst", "-9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, NewGSTCmd(testConfig()), tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRegister(t *testing.T) {
	root := &cobra.Command{Use: "siteledger"}
	Register(root, testConfig())

	for _, name := range []string{"words", "gst"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
