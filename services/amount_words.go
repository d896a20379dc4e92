package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

var maxRupees = decimal.NewFromInt(math.MaxInt64)

// AmountToWords converts a rupee amount to Indian English words for the
// "Amount in Words" line of an invoice.
//
//	17835660 → "Rupees One Crore Seventy Eight Lakh Thirty Five Thousand Six Hundred Sixty Only"
//	1234.50  → "Rupees One Thousand Two Hundred Thirty Four and Fifty Paise Only"
//
// The amount is rounded half-up to the nearest paise first. Negative,
// non-finite and non-numeric input returns ErrInvalidAmount.
func AmountToWords(amount any) (string, error) {
	d, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	d = RoundPaise(d)

	if d.IsZero() {
		return "Zero Rupees Only", nil
	}

	rupeePart := d.Truncate(0)
	if rupeePart.GreaterThan(maxRupees) {
		return "", fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, d.String())
	}
	rupees := rupeePart.IntPart()
	paise := d.Sub(rupeePart).Shift(2).IntPart()

	var parts []string
	if rupees > 0 {
		parts = append(parts, "Rupees", indianWords(rupees))
	}
	if paise > 0 {
		if rupees > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, underHundred(paise), "Paise")
	}
	parts = append(parts, "Only")

	return strings.Join(parts, " "), nil
}

// MustAmountToWords is AmountToWords for amounts already known to be valid.
// It returns an empty string instead of an error.
func MustAmountToWords(amount any) string {
	words, err := AmountToWords(amount)
	if err != nil {
		return ""
	}
	return words
}

// indianWords spells n using crore/lakh/thousand grouping. The crore count is
// itself spelled with the full grouping, so 1,00,000 crore reads "One Lakh Crore".
func indianWords(n int64) string {
	var parts []string

	if crores := n / crore; crores > 0 {
		parts = append(parts, indianWords(crores)+" Crore")
	}
	if lakhs := n % crore / lakh; lakhs > 0 {
		parts = append(parts, underHundred(lakhs)+" Lakh")
	}
	if thousands := n % lakh / thousand; thousands > 0 {
		parts = append(parts, underHundred(thousands)+" Thousand")
	}
	if rest := n % thousand; rest > 0 {
		parts = append(parts, underThousand(rest))
	}

	return strings.Join(parts, " ")
}

func underThousand(n int64) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, ones[h]+" Hundred")
	}
	if rest := n % 100; rest > 0 {
		parts = append(parts, underHundred(rest))
	}
	return strings.Join(parts, " ")
}

func underHundred(n int64) string {
	switch {
	case n >= 20:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	case n >= 10:
		return teens[n-10]
	default:
		return ones[n]
	}
}

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teens = []string{
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
	"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
