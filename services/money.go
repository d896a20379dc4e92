package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount coerces a number, numeric string or decimal into a non-negative
// decimal amount. Strings may carry a leading "₹" and Indian digit grouping
// commas ("₹1,23,456.78").
func ParseAmount(v any) (decimal.Decimal, error) {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, d.String())
	}
	return d, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("%w: missing value", ErrInvalidAmount)
	case bool:
		return decimal.Zero, fmt.Errorf("%w: %v is not a number", ErrInvalidAmount, x)
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, fmt.Errorf("%w: missing value", ErrInvalidAmount)
		}
		return *x, nil
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimPrefix(s, "₹")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, fmt.Errorf("%w: empty string", ErrInvalidAmount)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, x)
		}
		return d, nil
	case int, int8, int16, int32, int64:
		return decimal.NewFromInt(cast.ToInt64(x)), nil
	case uint, uint8, uint16, uint32, uint64:
		return decimal.NewFromUint64(cast.ToUint64(x)), nil
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v is not finite", ErrInvalidAmount, f)
	}
	return decimal.NewFromFloat(f), nil
}

// RoundPaise rounds an amount to 2 decimal places, half away from zero.
func RoundPaise(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Money converts a float read from a record into a decimal amount.
// Non-finite values collapse to zero.
func Money(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
