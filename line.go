package taxreport

import (
	"strconv"

	"github.com/etnz/taxreport/date"
	"github.com/shopspring/decimal"
)

// Conversion is a gain converted into the reporting currency.
//
// A conversion that could not be made (conversion disabled, no rate for that day) is
// not an error: it is reported as "n/a".
type Conversion struct {
	Amount decimal.Decimal
	OK     bool
}

// NotAvailable is the conversion of a gain without exchange rate.
var NotAvailable = Conversion{}

// Converted returns an available conversion.
func Converted(amount decimal.Decimal) Conversion { return Conversion{Amount: amount, OK: true} }

func (c Conversion) String() string {
	if !c.OK {
		return "n/a"
	}
	return c.Amount.String()
}

// Cell is a single report value, either a number or a text.
type Cell struct {
	Number  decimal.Decimal
	Text    string
	Numeric bool
}

// NumberCell returns a numeric cell.
func NumberCell(d decimal.Decimal) Cell { return Cell{Number: d, Numeric: true} }

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// LineItem is a computed report line.
//
// It is either a StandardLine (RSU and every plan without special rules) or an
// ESPPLine. The variant decides the column schema.
type LineItem interface {
	// Base returns the figures shared by every variant.
	Base() Line
	// Columns returns the column schema of the variant (without Year and PlanType).
	Columns() []Column
	// Cell returns the value of a column.
	Cell(Column) Cell

	lineItem()
}

// Line holds the figures shared by every LineItem variant.
type Line struct {
	Order                 string
	SaleDate              date.Date
	OrderType             string
	PlanType              string
	SharesSold            decimal.Decimal
	PurchaseValuePerShare decimal.Decimal
	GainLossPerShare      decimal.Decimal
	SaleValuePerShare     decimal.Decimal
	OrderValue            decimal.Decimal
	Gain                  decimal.Decimal // in the base currency
	ReportingGain         Conversion      // in the reporting currency
	SellToCover           bool
}

var standardColumns = []Column{
	ColOrder,
	ColSaleDate,
	ColOrderType,
	ColShares,
	ColPurchaseValue,
	ColGainLossPerShare,
	ColSaleValue,
	ColOrderValue,
	ColGain,
	ColReportingGain,
	ColSellToCover,
}

var esppColumns = append(append([]Column{}, standardColumns...), ColDiscount)

func (l Line) Base() Line { return l }

func (l Line) Cell(c Column) Cell {
	switch c {
	case ColYear:
		if l.SaleDate.IsZero() {
			return TextCell("")
		}
		return TextCell(strconv.Itoa(l.SaleDate.Year()))
	case ColPlanType:
		return TextCell(l.PlanType)
	case ColOrder:
		return TextCell(l.Order)
	case ColSaleDate:
		return TextCell(l.SaleDate.Display())
	case ColOrderType:
		return TextCell(l.OrderType)
	case ColShares:
		return NumberCell(l.SharesSold)
	case ColPurchaseValue:
		return NumberCell(l.PurchaseValuePerShare)
	case ColGainLossPerShare:
		return NumberCell(l.GainLossPerShare)
	case ColSaleValue:
		return NumberCell(l.SaleValuePerShare)
	case ColOrderValue:
		return NumberCell(l.OrderValue)
	case ColGain:
		return NumberCell(l.Gain)
	case ColReportingGain:
		if !l.ReportingGain.OK {
			return TextCell(l.ReportingGain.String())
		}
		return NumberCell(l.ReportingGain.Amount)
	case ColSellToCover:
		return TextCell(strconv.FormatBool(l.SellToCover))
	}
	return TextCell("")
}

// StandardLine is the line of a plan whose cost basis is the broker adjusted cost (RSU).
type StandardLine struct {
	Line
}

func (StandardLine) Columns() []Column { return standardColumns }
func (StandardLine) lineItem()         {}

// ESPPLine is the line of an employee stock purchase plan sale.
type ESPPLine struct {
	Line
	Discount string // discount annotation, e.g. "15%"
}

func (ESPPLine) Columns() []Column { return esppColumns }
func (ESPPLine) lineItem()         {}

func (l ESPPLine) Cell(c Column) Cell {
	if c == ColDiscount {
		return TextCell(l.Discount)
	}
	return l.Line.Cell(c)
}
