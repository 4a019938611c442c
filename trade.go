package taxreport

import (
	"strings"

	"github.com/etnz/taxreport/date"
	"github.com/shopspring/decimal"
)

// Plan types found in broker exports.
const (
	RSU  = "RSU"
	ESPP = "ESPP"
)

// sellToCoverMarker identifies sell-to-cover orders in the order type text.
const sellToCoverMarker = "STC"

// sellToCoverSpelled is the spelled-out form some exports use ("Sale to Cover", "Sell to cover").
const sellToCoverSpelled = "to cover"

// TradeRecord is a normalized broker row.
type TradeRecord struct {
	Line                 int // source line, for diagnostics
	OrderNumber          string
	SaleDate             date.Date // zero if the source date could not be parsed
	OrderType            string
	PlanType             string // e.g. RSU, ESPP
	SharesSold           decimal.Decimal
	AdjustedCostPerShare decimal.Decimal
	GainLossPerShare     decimal.Decimal
	PurchasePrice        decimal.Decimal
	SellToCover          bool // derived from OrderType
}

// IsESPP reports whether the record belongs to an employee stock purchase plan.
func (t TradeRecord) IsESPP() bool { return t.PlanType == ESPP }

// isSellToCover reports whether an order type denotes a sell-to-cover order.
func isSellToCover(orderType string) bool {
	return strings.Contains(orderType, sellToCoverMarker) ||
		strings.Contains(strings.ToLower(orderType), sellToCoverSpelled)
}
