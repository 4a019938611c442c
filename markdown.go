package taxreport

import (
	"fmt"
	"strings"
)

// numericColumns are right aligned in markdown.
var numericColumns = map[Column]bool{
	ColShares:           true,
	ColPurchaseValue:    true,
	ColGainLossPerShare: true,
	ColSaleValue:        true,
	ColOrderValue:       true,
	ColGain:             true,
	ColReportingGain:    true,
}

// Markdown renders the table as a markdown section.
func (t *Table) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %d %s\n\n", t.Year, t.PlanType)

	writeMarkdownRow(&b, t.Header)
	align := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if numericColumns[c] {
			align[i] = "---:"
		} else {
			align[i] = ":---"
		}
	}
	fmt.Fprintf(&b, "|%s|\n", strings.Join(align, "|"))

	for _, row := range t.AllRows() {
		writeMarkdownRow(&b, row)
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		fmt.Fprintf(b, " %s |", strings.ReplaceAll(cell, "|", `\|`))
	}
	b.WriteString("\n")
}

// Markdown renders a sequence of tables, in order, separated by a blank line.
func Markdown(tables []*Table) string {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Markdown())
	}
	return b.String()
}
