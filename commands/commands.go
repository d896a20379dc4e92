// Package commands adds SiteLedger's calculator subcommands to the
// PocketBase CLI.
package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"siteledger/config"
	"siteledger/services"
)

// Register attaches the words and gst subcommands to root.
func Register(root *cobra.Command, cfg *config.Config) {
	root.AddCommand(NewWordsCmd(), NewGSTCmd(cfg))
}

// NewWordsCmd prints an amount in Indian-English words.
func NewWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "words <amount>",
		Short:   "Print an amount in words (lakh/crore)",
		Example: "  siteledger words 1234567.50",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := services.AmountToWords(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), words)
			return nil
		},
	}
}

// NewGSTCmd prints a CGST/SGST split. Rates default to the configured
// invoice rates.
func NewGSTCmd(cfg *config.Config) *cobra.Command {
	var mode, amount, cgst, sgst string

	cmd := &cobra.Command{
		Use:   "gst",
		Short: "Split an amount into taxable value, CGST and SGST",
		Example: "  siteledger gst --mode base --amount 100000\n" +
			"  siteledger gst --mode total --amount 118000 --cgst 9 --sgst 9",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := services.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			c, err := decimal.NewFromString(cgst)
			if err != nil {
				return fmt.Errorf("--cgst: %w", services.ErrInvalidRate)
			}
			s, err := decimal.NewFromString(sgst)
			if err != nil {
				return fmt.Errorf("--sgst: %w", services.ErrInvalidRate)
			}

			split, err := services.SplitByMode(mode, amt, c, s)
			if err != nil {
				return err
			}
			r := split.Rounded()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s %s\n", "Taxable value", services.FormatRupees(r.BaseAmount))
			fmt.Fprintf(out, "%-16s %s\n", "CGST "+services.FormatPercent(r.CGSTRate), services.FormatRupees(r.CGSTAmount))
			fmt.Fprintf(out, "%-16s %s\n", "SGST "+services.FormatPercent(r.SGSTRate), services.FormatRupees(r.SGSTAmount))
			fmt.Fprintf(out, "%-16s %s\n", "Total", services.FormatRupees(r.TotalAmount))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", services.SplitModeBase, "which side is known: base or total")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in rupees")
	cmd.Flags().StringVar(&cgst, "cgst", cfg.DefaultCGST.String(), "CGST rate in percent")
	cmd.Flags().StringVar(&sgst, "sgst", cfg.DefaultSGST.String(), "SGST rate in percent")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
