package taxreport

import (
	"fmt"
	"strings"
)

// Error policy per kind:
//
//	SchemaError          fatal, returned by Normalize before anything is computed
//	MissingFieldError    fatal, returned by Render, no table is produced
//	ShapeError           fatal, returned by Render, no table is produced
//	rate fetch failure   recovered by RateCache, the gain is reported as "n/a"
//	MalformedRatesError  fatal, RateCache panics with it

// SchemaError reports required columns absent from the input.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// MissingFieldError reports a line item that cannot be grouped.
type MissingFieldError struct {
	Index int    // index of the item in the rendered sequence
	Order string // order number of the item, for diagnostics
	Field string // "SaleDate" or "PlanType"
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q in entry at index %d (order %q)", e.Field, e.Index, e.Order)
}

// ShapeError reports input that is not a sequence of uniform records.
type ShapeError struct {
	Index  int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("input must be a sequence of uniform-keyed records: entry at index %d: %s", e.Index, e.Reason)
}

// MalformedRatesError is returned by a RateFetcher when the rate service answered
// successfully but its rates are not a currency to rate mapping.
type MalformedRatesError struct {
	Day, Base string
	Got       any
}

func (e *MalformedRatesError) Error() string {
	return fmt.Sprintf("returned rates for %s (base %s) are not a mapping: %v", e.Day, e.Base, e.Got)
}
