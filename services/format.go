package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees formats an amount in Indian Rupee notation with exactly two
// decimals. After the rightmost 3 digits, digits are grouped in pairs
// (₹1,23,45,678.90).
func FormatRupees(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(raw, ".")
	result := "₹" + applyIndianGrouping(intPart) + "." + decPart
	if negative && strings.Trim(intPart+decPart, "0") != "" {
		result = "-" + result
	}
	return result
}

// FormatINR is FormatRupees for float values read from records.
func FormatINR(amount float64) string {
	return FormatRupees(Money(amount))
}

// FormatPercent trims a trailing ".00" so 9 prints as "9%" and 2.5 as "2.5%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Round(2).String() + "%"
}

// applyIndianGrouping inserts commas into an integer string: the rightmost
// 3 digits form the first group, then every 2 digits.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

// FormatQty prints whole quantities without decimals and others with two.
func FormatQty(qty decimal.Decimal) string {
	if qty.Equal(qty.Truncate(0)) {
		return qty.StringFixed(0)
	}
	return qty.StringFixed(2)
}
