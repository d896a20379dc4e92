package services

import "github.com/shopspring/decimal"

// UOMOptions are the units a line item may be billed in.
var UOMOptions = []string{
	"Sqft",
	"Sqm",
	"Rft",
	"Rmt",
	"Nos",
	"Cum",
	"Kg",
	"Bag",
	"Box",
	"Lumpsum",
	"Day",
}

// GSTRateOptions are the CGST (and SGST) rates offered on invoice forms.
// Each is half of a GST slab.
var GSTRateOptions = []decimal.Decimal{
	decimal.Zero,
	decimal.RequireFromString("2.5"),
	decimal.NewFromInt(6),
	decimal.NewFromInt(9),
	decimal.NewFromInt(14),
}

func stringOptions(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
