package config

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func validConfig() Config {
	return Config{
		CompanyName:   "SiteLedger Contractors",
		CompanyGSTIN:  "27AAPFU0939F1ZV",
		CompanyEmail:  "accounts@example.com",
		CompanyPhone:  "9876543210",
		DefaultCGST:   decimal.NewFromInt(9),
		DefaultSGST:   decimal.NewFromInt(9),
		InvoicePrefix: "SL",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "optional company fields empty",
			mutate:  func(c *Config) { c.CompanyGSTIN, c.CompanyEmail, c.CompanyPhone = "", "", "" },
			wantErr: false,
		},
		{
			name:        "empty company name",
			mutate:      func(c *Config) { c.CompanyName = "  " },
			wantErr:     true,
			errorString: "company name cannot be empty",
		},
		{
			name:        "bad GSTIN",
			mutate:      func(c *Config) { c.CompanyGSTIN = "27AAPFU0939F1Z" },
			wantErr:     true,
			errorString: "invalid company GSTIN '27AAPFU0939F1Z'",
		},
		{
			name:        "bad phone",
			mutate:      func(c *Config) { c.CompanyPhone = "12345" },
			wantErr:     true,
			errorString: "invalid company phone '12345'",
		},
		{
			name:        "negative CGST",
			mutate:      func(c *Config) { c.DefaultCGST = decimal.NewFromInt(-1) },
			wantErr:     true,
			errorString: "invalid default CGST -1: must not be negative",
		},
		{
			name:        "prefix with slash",
			mutate:      func(c *Config) { c.InvoicePrefix = "SL/26" },
			wantErr:     true,
			errorString: "invalid invoice prefix 'SL/26'",
		},
		{
			name:        "empty prefix",
			mutate:      func(c *Config) { c.InvoicePrefix = "" },
			wantErr:     true,
			errorString: "invoice prefix cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	c := validConfig()
	c.CompanyName = ""
	c.DefaultSGST = decimal.NewFromInt(-9)

	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"company name cannot be empty", "invalid default SGST"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SITELEDGER_COMPANY_NAME", "SITELEDGER_COMPANY_GSTIN", "SITELEDGER_DEFAULT_CGST",
		"SITELEDGER_DEFAULT_SGST", "SITELEDGER_INVOICE_PREFIX", "SITELEDGER_SEED",
	} {
		t.Setenv(key, "")
	}

	c := Load()
	if c.CompanyName != "SiteLedger Contractors" {
		t.Errorf("CompanyName = %q", c.CompanyName)
	}
	if !c.DefaultCGST.Equal(decimal.NewFromInt(9)) || !c.DefaultSGST.Equal(decimal.NewFromInt(9)) {
		t.Errorf("default rates = %s/%s, want 9/9", c.DefaultCGST, c.DefaultSGST)
	}
	if c.InvoicePrefix != "SL" {
		t.Errorf("InvoicePrefix = %q, want SL", c.InvoicePrefix)
	}
	if c.Seed {
		t.Error("Seed should default to false")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SITELEDGER_COMPANY_NAME", "Patil Tiling Works")
	t.Setenv("SITELEDGER_COMPANY_GSTIN", "27aapfu0939f1zv")
	t.Setenv("SITELEDGER_DEFAULT_CGST", "2.5")
	t.Setenv("SITELEDGER_DEFAULT_SGST", "not-a-number")
	t.Setenv("SITELEDGER_INVOICE_PREFIX", "PTW")
	t.Setenv("SITELEDGER_SEED", "true")

	c := Load()
	if c.CompanyName != "Patil Tiling Works" {
		t.Errorf("CompanyName = %q", c.CompanyName)
	}
	if c.CompanyGSTIN != "27AAPFU0939F1ZV" {
		t.Errorf("CompanyGSTIN = %q, want upper-cased", c.CompanyGSTIN)
	}
	if !c.DefaultCGST.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("DefaultCGST = %s, want 2.5", c.DefaultCGST)
	}
	if !c.DefaultSGST.Equal(decimal.NewFromInt(9)) {
		t.Errorf("DefaultSGST = %s, want fallback 9", c.DefaultSGST)
	}
	if c.InvoicePrefix != "PTW" || !c.Seed {
		t.Errorf("InvoicePrefix = %q, Seed = %v", c.InvoicePrefix, c.Seed)
	}

	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "SITELEDGER_DEFAULT_SGST") {
		t.Errorf("Validate() error = %v, want the unparsable SGST reported", err)
	}

	company := c.Company()
	if company.Name != "Patil Tiling Works" || company.GSTIN != "27AAPFU0939F1ZV" {
		t.Errorf("Company() = %+v", company)
	}
}

func TestLoad_UnparsableValuesFailValidate(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"cgst not a number", "SITELEDGER_DEFAULT_CGST", "abc", "invalid SITELEDGER_DEFAULT_CGST 'abc': must be a number"},
		{"sgst percent sign", "SITELEDGER_DEFAULT_SGST", "9%", "invalid SITELEDGER_DEFAULT_SGST '9%': must be a number"},
		{"seed not a bool", "SITELEDGER_SEED", "maybe", "invalid SITELEDGER_SEED 'maybe': must be true or false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"SITELEDGER_COMPANY_NAME", "SITELEDGER_COMPANY_GSTIN", "SITELEDGER_COMPANY_EMAIL",
				"SITELEDGER_COMPANY_PHONE", "SITELEDGER_DEFAULT_CGST", "SITELEDGER_DEFAULT_SGST",
				"SITELEDGER_INVOICE_PREFIX", "SITELEDGER_SEED",
			} {
				t.Setenv(key, "")
			}
			t.Setenv(tt.key, tt.value)

			err := Load().Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error for %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_ValidEnvPassesValidate(t *testing.T) {
	t.Setenv("SITELEDGER_COMPANY_NAME", "Patil Tiling Works")
	t.Setenv("SITELEDGER_COMPANY_GSTIN", "")
	t.Setenv("SITELEDGER_COMPANY_EMAIL", "")
	t.Setenv("SITELEDGER_COMPANY_PHONE", "")
	t.Setenv("SITELEDGER_DEFAULT_CGST", "2.5")
	t.Setenv("SITELEDGER_DEFAULT_SGST", "2.5")
	t.Setenv("SITELEDGER_INVOICE_PREFIX", "PTW")
	t.Setenv("SITELEDGER_SEED", "1")

	if err := Load().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
