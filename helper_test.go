package taxreport

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/taxreport/date"
	"github.com/shopspring/decimal"
)

// dec parses a decimal or panics.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixedRates is a RateSource with one rate for every day.
type fixedRates struct {
	rate  decimal.Decimal
	calls int
}

func (f *fixedRates) Rate(_ context.Context, day date.Date, base, target string) (decimal.Decimal, bool) {
	f.calls++
	if day.IsZero() {
		return decimal.Zero, false
	}
	return f.rate, true
}

// countingFetcher is a RateFetcher serving rates from memory.
type countingFetcher struct {
	rates map[string]map[string]decimal.Decimal // by day
	err   error
	calls int
}

func (f *countingFetcher) FetchRates(_ context.Context, day, base string) (map[string]decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates[day], nil
}

// brokerHeader is the header of a broker export, with extra columns to be ignored.
const brokerHeader = "Plan Type;Order Type;Qty.;Date Sold;Order Number;Adjusted Gain/Loss Per Share;Adjusted Cost Basis Per Share;Purchase Price;Ignored\n"

// readCSV reads lines under brokerHeader.
func readCSV(t *testing.T, lines ...string) *Rows {
	t.Helper()
	src, err := ReadCSV(strings.NewReader(brokerHeader + strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ReadCSV() unexpected error: %v", err)
	}
	return src
}
