package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GSTSplit is an amount broken into its taxable base and CGST/SGST components.
// Amounts keep full precision; call Rounded for display.
type GSTSplit struct {
	BaseAmount  decimal.Decimal `json:"base_amount"`
	CGSTRate    decimal.Decimal `json:"cgst_rate"`
	SGSTRate    decimal.Decimal `json:"sgst_rate"`
	CGSTAmount  decimal.Decimal `json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `json:"sgst_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SplitFromBase adds CGST and SGST on top of a known taxable amount.
// Used for proforma invoices, where the base is quoted.
func SplitFromBase(base, cgstRate, sgstRate decimal.Decimal) (GSTSplit, error) {
	if base.IsNegative() {
		return GSTSplit{}, fmt.Errorf("%w: base %s is negative", ErrInvalidAmount, base.String())
	}
	if err := checkRates(cgstRate, sgstRate); err != nil {
		return GSTSplit{}, err
	}

	cgst := base.Mul(cgstRate).Div(hundred)
	sgst := base.Mul(sgstRate).Div(hundred)

	return GSTSplit{
		BaseAmount:  base,
		CGSTRate:    cgstRate,
		SGSTRate:    sgstRate,
		CGSTAmount:  cgst,
		SGSTAmount:  sgst,
		TotalAmount: base.Add(cgst).Add(sgst),
	}, nil
}

// SplitFromTotal derives the taxable base from a GST-inclusive total.
// Used for tax invoices, where the received payment is known.
func SplitFromTotal(total, cgstRate, sgstRate decimal.Decimal) (GSTSplit, error) {
	multiplier := decimal.NewFromInt(1).Add(cgstRate.Add(sgstRate).Div(hundred))
	if multiplier.IsZero() {
		return GSTSplit{}, fmt.Errorf("%w: combined rate %s%% cancels the total", ErrDivisionByZero, cgstRate.Add(sgstRate).String())
	}
	if total.IsNegative() {
		return GSTSplit{}, fmt.Errorf("%w: total %s is negative", ErrInvalidAmount, total.String())
	}
	if err := checkRates(cgstRate, sgstRate); err != nil {
		return GSTSplit{}, err
	}

	base := total.Div(multiplier)

	return GSTSplit{
		BaseAmount:  base,
		CGSTRate:    cgstRate,
		SGSTRate:    sgstRate,
		CGSTAmount:  base.Mul(cgstRate).Div(hundred),
		SGSTAmount:  base.Mul(sgstRate).Div(hundred),
		TotalAmount: total,
	}, nil
}

// Rounded returns a copy with every amount rounded to paise.
func (s GSTSplit) Rounded() GSTSplit {
	s.BaseAmount = RoundPaise(s.BaseAmount)
	s.CGSTAmount = RoundPaise(s.CGSTAmount)
	s.SGSTAmount = RoundPaise(s.SGSTAmount)
	s.TotalAmount = RoundPaise(s.TotalAmount)
	return s
}

// CombinedRate is CGST + SGST in percent.
func (s GSTSplit) CombinedRate() decimal.Decimal {
	return s.CGSTRate.Add(s.SGSTRate)
}

// TaxAmount is CGST + SGST.
func (s GSTSplit) TaxAmount() decimal.Decimal {
	return s.CGSTAmount.Add(s.SGSTAmount)
}

func checkRates(cgstRate, sgstRate decimal.Decimal) error {
	if cgstRate.IsNegative() {
		return fmt.Errorf("%w: CGST %s%% is negative", ErrInvalidRate, cgstRate.String())
	}
	if sgstRate.IsNegative() {
		return fmt.Errorf("%w: SGST %s%% is negative", ErrInvalidRate, sgstRate.String())
	}
	return nil
}

// Split modes accepted by SplitByMode.
const (
	SplitModeBase  = "base"
	SplitModeTotal = "total"
)

// SplitByMode dispatches to SplitFromBase or SplitFromTotal.
func SplitByMode(mode string, amount, cgstRate, sgstRate decimal.Decimal) (GSTSplit, error) {
	switch mode {
	case SplitModeBase:
		return SplitFromBase(amount, cgstRate, sgstRate)
	case SplitModeTotal:
		return SplitFromTotal(amount, cgstRate, sgstRate)
	}
	return GSTSplit{}, fmt.Errorf("unknown split mode %q: must be %q or %q", mode, SplitModeBase, SplitModeTotal)
}
