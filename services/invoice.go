package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes pre-payment and post-payment invoices.
type InvoiceType string

const (
	InvoiceTypeProforma InvoiceType = "proforma"
	InvoiceTypeTax      InvoiceType = "tax"
)

// Title is the heading printed on the document.
func (t InvoiceType) Title() string {
	if t == InvoiceTypeTax {
		return "TAX INVOICE"
	}
	return "PROFORMA INVOICE"
}

// AmountBasis says which side of the GST split is known.
type AmountBasis string

const (
	// BasisBase: line items are pre-tax, GST is added on top.
	BasisBase AmountBasis = "base"
	// BasisInclusive: the received amount already contains GST.
	BasisInclusive AmountBasis = "inclusive"
)

// DefaultBasis is base for proforma invoices and inclusive for tax invoices.
func DefaultBasis(t InvoiceType) AmountBasis {
	if t == InvoiceTypeTax {
		return BasisInclusive
	}
	return BasisBase
}

// InvoiceLine is one billed row.
type InvoiceLine struct {
	Description string
	HSNCode     string
	UoM         string
	Qty         decimal.Decimal
	Rate        decimal.Decimal
}

// Amount is Qty × Rate.
func (l InvoiceLine) Amount() decimal.Decimal {
	return l.Qty.Mul(l.Rate)
}

// InvoiceInput is everything needed to total an invoice.
type InvoiceInput struct {
	Type           InvoiceType
	Basis          AmountBasis
	Lines          []InvoiceLine
	InclusiveTotal decimal.Decimal
	CGSTRate       decimal.Decimal
	SGSTRate       decimal.Decimal
}

// InvoiceTotals holds the display figures for an invoice. Split keeps the
// unrounded values.
type InvoiceTotals struct {
	Split         GSTSplit        `json:"-"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	CGSTRate      decimal.Decimal `json:"cgst_rate"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTRate      decimal.Decimal `json:"sgst_rate"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	RoundOff      decimal.Decimal `json:"round_off"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	AmountInWords string          `json:"amount_in_words"`
}

// CalcInvoiceTotals totals an invoice. With BasisBase the line amounts are
// summed and GST added; with BasisInclusive the inclusive total is split back
// into base and tax. The grand total is rounded to the nearest rupee.
func CalcInvoiceTotals(in InvoiceInput) (InvoiceTotals, error) {
	basis := in.Basis
	if basis == "" {
		basis = DefaultBasis(in.Type)
	}

	var split GSTSplit
	var err error
	switch basis {
	case BasisBase:
		base := decimal.Zero
		for i, l := range in.Lines {
			if l.Qty.IsNegative() || l.Rate.IsNegative() {
				return InvoiceTotals{}, fmt.Errorf("%w: line %d has a negative qty or rate", ErrInvalidAmount, i+1)
			}
			base = base.Add(l.Amount())
		}
		split, err = SplitFromBase(base, in.CGSTRate, in.SGSTRate)
	case BasisInclusive:
		split, err = SplitFromTotal(in.InclusiveTotal, in.CGSTRate, in.SGSTRate)
	default:
		return InvoiceTotals{}, fmt.Errorf("unknown amount basis %q", basis)
	}
	if err != nil {
		return InvoiceTotals{}, err
	}

	shown := split.Rounded()
	grand := shown.TotalAmount.Round(0)

	words, err := AmountToWords(grand)
	if err != nil {
		return InvoiceTotals{}, err
	}

	return InvoiceTotals{
		Split:         split,
		TaxableValue:  shown.BaseAmount,
		CGSTRate:      split.CGSTRate,
		CGSTAmount:    shown.CGSTAmount,
		SGSTRate:      split.SGSTRate,
		SGSTAmount:    shown.SGSTAmount,
		SubTotal:      shown.TotalAmount,
		RoundOff:      calcRoundOff(shown.TotalAmount),
		GrandTotal:    grand,
		AmountInWords: words,
	}, nil
}

// calcRoundOff rounds to the nearest rupee; a fractional part of .50 or more
// rounds up.
func calcRoundOff(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0).Sub(amount)
}
