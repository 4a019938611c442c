package taxreport

import (
	"log"
	"strings"

	"github.com/etnz/taxreport/date"
	"github.com/shopspring/decimal"
)

// Column names of the broker export.
const (
	ColumnPlanType      = "Plan Type"
	ColumnOrderType     = "Order Type"
	ColumnQuantity      = "Qty."
	ColumnDateSold      = "Date Sold"
	ColumnOrderNumber   = "Order Number"
	ColumnGainLoss      = "Adjusted Gain/Loss Per Share"
	ColumnCostBasis     = "Adjusted Cost Basis Per Share"
	ColumnPurchasePrice = "Purchase Price"
)

// RequiredColumns lists the columns Normalize needs, in report order.
var RequiredColumns = []string{
	ColumnPlanType,
	ColumnOrderType,
	ColumnQuantity,
	ColumnDateSold,
	ColumnOrderNumber,
	ColumnGainLoss,
	ColumnCostBasis,
	ColumnPurchasePrice,
}

// Normalize converts raw broker rows into trade records, preserving the source order.
//
// It fails with a *SchemaError if any required column is missing. Row level problems
// never fail: unparseable numbers become zero and unparseable dates become the zero
// date.Date.
func Normalize(src RowSource) ([]TradeRecord, error) {
	have := make(map[string]bool)
	for _, c := range src.Columns() {
		have[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	records := []TradeRecord{}
	for row := range src.Rows() {
		records = append(records, normalizeRow(row))
	}
	return records, nil
}

func normalizeRow(row Row) TradeRecord {
	orderType := strings.TrimSpace(row.Get(ColumnOrderType))

	saleDate, err := date.ParseBroker(row.Get(ColumnDateSold))
	if err != nil {
		log.Printf("line %d: order %q has no usable sale date: %v", row.Line, row.Get(ColumnOrderNumber), err)
	}

	return TradeRecord{
		Line:                 row.Line,
		OrderNumber:          strings.TrimSpace(row.Get(ColumnOrderNumber)),
		SaleDate:             saleDate,
		OrderType:            orderType,
		PlanType:             strings.TrimSpace(row.Get(ColumnPlanType)),
		SharesSold:           ParseAmount(row.Get(ColumnQuantity)).Abs(),
		AdjustedCostPerShare: ParseAmount(row.Get(ColumnCostBasis)),
		GainLossPerShare:     ParseAmount(row.Get(ColumnGainLoss)),
		PurchasePrice:        ParseAmount(row.Get(ColumnPurchasePrice)),
		SellToCover:          isSellToCover(orderType),
	}
}

// ParseAmount reads a locale formatted number like "$1,234.56", "1.234,56 €" or "(5,00)".
//
// When both '.' and ',' are present, the right-most one is the decimal separator. A
// single ',' is a decimal separator, a repeated one is a grouping separator. Parentheses
// or a leading '-', or both, make the number negative. Anything that cannot be read is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ' ', '\t', '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	neg := false
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		neg = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		d = d.Neg()
	}
	return d
}
