package taxreport

import (
	"fmt"
	"strings"
)

// Column identifies a report column.
type Column int

const (
	ColYear Column = iota
	ColPlanType
	ColOrder
	ColSaleDate
	ColOrderType
	ColShares
	ColPurchaseValue // purchase value per share
	ColGainLossPerShare
	ColSaleValue // sale value per share
	ColOrderValue
	ColGain          // realized gain in the base currency
	ColReportingGain // realized gain in the reporting currency
	ColSellToCover
	ColDiscount // ESPP only
)

var columnNames = map[Column]string{
	ColYear:             "year",
	ColPlanType:         "plantype",
	ColOrder:            "order",
	ColSaleDate:         "saledate",
	ColOrderType:        "ordertype",
	ColShares:           "shares",
	ColPurchaseValue:    "purchasevalue",
	ColGainLossPerShare: "gainloss",
	ColSaleValue:        "salevalue",
	ColOrderValue:       "ordervalue",
	ColGain:             "gain",
	ColReportingGain:    "reportinggain",
	ColSellToCover:      "selltocover",
	ColDiscount:         "discount",
}

// String returns the column identifier as accepted by ParseColumn.
func (c Column) String() string {
	if n, ok := columnNames[c]; ok {
		return n
	}
	return fmt.Sprintf("column(%d)", int(c))
}

// ParseColumn parses a column identifier, case insensitive.
func ParseColumn(s string) (Column, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, n := range columnNames {
		if n == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q", s)
}

// ParseColumns parses a comma separated list of column identifiers. Empty items are ignored.
func ParseColumns(s string) ([]Column, error) {
	var cols []Column
	for _, item := range strings.Split(s, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		c, err := ParseColumn(item)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// DefaultExcluded are the columns never shown unless explicitly asked for.
var DefaultExcluded = []Column{ColSellToCover}

// DefaultTotalExcluded are identity or per share columns that are never summed.
var DefaultTotalExcluded = []Column{ColGainLossPerShare, ColOrder, ColSaleDate, ColDiscount, ColOrderType, ColSellToCover}

// Labels maps columns to their header text.
type Labels map[Column]string

// Label returns the header for c, falling back to its identifier.
func (l Labels) Label(c Column) string {
	if s, ok := l[c]; ok {
		return s
	}
	return c.String()
}

// EnglishLabels returns English headers. Gain headers carry their currency.
func EnglishLabels(base, reporting string) Labels {
	return Labels{
		ColYear:             "Year",
		ColPlanType:         "PlanType",
		ColOrder:            "Order",
		ColSaleDate:         "SaleDate",
		ColOrderType:        "Type",
		ColShares:           "Shares",
		ColPurchaseValue:    "PurchaseValue",
		ColGainLossPerShare: "Gain/Loss",
		ColSaleValue:        "SaleValue",
		ColOrderValue:       "OrderValue",
		ColGain:             fmt.Sprintf("Gain (%s)", base),
		ColReportingGain:    fmt.Sprintf("Gain (%s)", reporting),
		ColSellToCover:      "SellToCover",
		ColDiscount:         "Discount (incl.)",
	}
}

// GermanLabels returns the German headers used by German tax advisors.
func GermanLabels(base, reporting string) Labels {
	return Labels{
		ColYear:             "Year",
		ColPlanType:         "PlanType",
		ColOrder:            "Order",
		ColSaleDate:         "Verkaufsdatum",
		ColOrderType:        "Type",
		ColShares:           "Anz.",
		ColPurchaseValue:    "Kaufwert",
		ColGainLossPerShare: "Gewinn/Verlust",
		ColSaleValue:        "Verkaufswert",
		ColOrderValue:       "Orderwert",
		ColGain:             fmt.Sprintf("KapitalErtrag (%s)", base),
		ColReportingGain:    fmt.Sprintf("KapitalErtrag (%s)", reporting),
		ColSellToCover:      "is_selltocover",
		ColDiscount:         "Rabatt (inkl.)",
	}
}

// LabelsFor returns the labels of a language ("en" or "de").
func LabelsFor(lang, base, reporting string) (Labels, error) {
	switch strings.ToLower(lang) {
	case "", "en":
		return EnglishLabels(base, reporting), nil
	case "de":
		return GermanLabels(base, reporting), nil
	default:
		return nil, fmt.Errorf("unsupported language %q (want en or de)", lang)
	}
}
