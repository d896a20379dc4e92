package services

import "errors"

var (
	// ErrInvalidAmount is returned for amounts that are not finite, parseable,
	// non-negative numbers.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDivisionByZero is returned when a GST-inclusive total is split with
	// rates that make the combined multiplier zero.
	ErrDivisionByZero = errors.New("division by zero")

	ErrInvalidRate     = errors.New("invalid tax rate")
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM")
	ErrUnsupportedFile = errors.New("unsupported file format: must be .csv, .xlsx or .xls")

	// ErrNotFound is returned when a record is missing or belongs to another
	// project.
	ErrNotFound = errors.New("not found")
)
