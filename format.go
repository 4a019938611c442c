package taxreport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberFormat describes how numbers are printed in reports.
type NumberFormat struct {
	Decimal  string // decimal separator
	Thousand string // grouping separator, may be empty
	Fraction int    // number of decimal digits
}

// DefaultNumberFormat is the German format: 1.234,56
func DefaultNumberFormat() NumberFormat { return NumberFormat{Decimal: ",", Thousand: ".", Fraction: 2} }

// NumberFormatFor returns the number format of a locale (de, en, fr).
func NumberFormatFor(locale string) (NumberFormat, error) {
	lang, _, _ := strings.Cut(strings.ToLower(locale), "_")
	lang, _, _ = strings.Cut(lang, "-")
	switch lang {
	case "", "de":
		return DefaultNumberFormat(), nil
	case "en":
		return NumberFormat{Decimal: ".", Thousand: ",", Fraction: 2}, nil
	case "fr":
		return NumberFormat{Decimal: ",", Thousand: " ", Fraction: 2}, nil
	default:
		return NumberFormat{}, fmt.Errorf("unsupported locale %q (want de, en or fr)", locale)
	}
}

// Format returns d rounded to f.Fraction digits, with grouping. It never prints a currency symbol.
//
// Any magnitude is supported: the digits come from the decimal itself, not from an int64.
func (f NumberFormat) Format(d decimal.Decimal) string {
	digits, neg := d.StringFixed(int32(f.Fraction)), false
	if strings.HasPrefix(digits, "-") {
		digits, neg = digits[1:], true
	}
	whole, fraction, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := range len(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.Thousand)
		}
		b.WriteByte(whole[i])
	}
	if fraction != "" {
		b.WriteString(f.Decimal)
		b.WriteString(fraction)
	}
	return b.String()
}

// FormatCell formats numeric cells with f and returns text cells as they are.
func (f NumberFormat) FormatCell(c Cell) string {
	if c.Numeric {
		return f.Format(c.Number)
	}
	return c.Text
}
