package taxreport

import "context"

// Policy holds the reporting constants of a run.
type Policy struct {
	// ESPPDiscount is the discount annotation of every ESPP line. It is a plan
	// constant, it is not derived from the broker figures.
	ESPPDiscount string
	// BaseCurrency is the currency of the broker figures.
	BaseCurrency string
	// ReportingCurrency is the currency gains are converted into.
	ReportingCurrency string
}

// DefaultPolicy returns the policy of a USD broker account reported in EUR.
func DefaultPolicy() Policy {
	return Policy{
		ESPPDiscount:      "15%",
		BaseCurrency:      "USD",
		ReportingCurrency: "EUR",
	}
}

// Calculator derives report figures from trade records.
type Calculator struct {
	policy Policy
	rates  RateSource
}

// NewCalculator returns a Calculator. Gains are converted into the reporting
// currency only if rates is not nil.
func NewCalculator(policy Policy, rates RateSource) *Calculator {
	return &Calculator{policy: policy, rates: rates}
}

// Compute returns one LineItem per record, in the same order.
//
// Records without a sale date are kept: they get an "n/a" conversion and grouping
// decides their fate.
func (c *Calculator) Compute(ctx context.Context, records []TradeRecord) []LineItem {
	items := make([]LineItem, 0, len(records))
	for _, r := range records {
		items = append(items, c.computeOne(ctx, r))
	}
	return items
}

func (c *Calculator) computeOne(ctx context.Context, r TradeRecord) LineItem {
	line := Line{
		Order:       r.OrderNumber,
		SaleDate:    r.SaleDate,
		OrderType:   r.OrderType,
		PlanType:    r.PlanType,
		SharesSold:  r.SharesSold,
		SellToCover: r.SellToCover,
	}

	if r.IsESPP() {
		// the adjusted cost column holds the sale value, the gain is recomputed.
		line.PurchaseValuePerShare = r.PurchasePrice
		line.SaleValuePerShare = r.AdjustedCostPerShare
		line.GainLossPerShare = line.SaleValuePerShare.Sub(line.PurchaseValuePerShare)
	} else {
		line.PurchaseValuePerShare = r.AdjustedCostPerShare
		line.SaleValuePerShare = r.AdjustedCostPerShare.Add(r.GainLossPerShare)
		line.GainLossPerShare = r.GainLossPerShare
	}
	line.OrderValue = line.SaleValuePerShare.Mul(r.SharesSold)
	line.Gain = line.GainLossPerShare.Mul(r.SharesSold)
	line.ReportingGain = c.convert(ctx, line)

	if r.IsESPP() {
		return ESPPLine{Line: line, Discount: c.policy.ESPPDiscount}
	}
	return StandardLine{Line: line}
}

func (c *Calculator) convert(ctx context.Context, line Line) Conversion {
	if c.rates == nil || line.SaleDate.IsZero() {
		return NotAvailable
	}
	rate, ok := c.rates.Rate(ctx, line.SaleDate, c.policy.BaseCurrency, c.policy.ReportingCurrency)
	if !ok {
		return NotAvailable
	}
	return Converted(line.Gain.Mul(rate))
}
