package taxreport

import (
	"context"
	"fmt"
)

// Options configures a report run.
type Options struct {
	Policy             Policy
	IncludeSellToCover bool // keep sell-to-cover orders, dropped by default
	Render             RenderOptions
}

// BuildReport runs the whole pipeline: rows are normalized, filtered, computed and
// rendered. Gains are converted only if rates is not nil.
//
// No table is returned unless every table could be built.
func BuildReport(ctx context.Context, src RowSource, opts Options, rates RateSource) ([]*Table, error) {
	records, err := Normalize(src)
	if err != nil {
		return nil, fmt.Errorf("cannot read trades: %w", err)
	}

	records = FilterSellToCover(records, opts.IncludeSellToCover)
	items := NewCalculator(opts.Policy, rates).Compute(ctx, records)

	tables, err := Render(items, opts.Render)
	if err != nil {
		return nil, fmt.Errorf("cannot render report: %w", err)
	}
	return tables, nil
}

// FilterSellToCover drops sell-to-cover records unless include is true.
func FilterSellToCover(records []TradeRecord, include bool) []TradeRecord {
	if include {
		return records
	}
	kept := make([]TradeRecord, 0, len(records))
	for _, r := range records {
		if !r.SellToCover {
			kept = append(kept, r)
		}
	}
	return kept
}
