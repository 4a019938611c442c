package taxreport

import (
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// TotalLabel is the label of the totals row.
const TotalLabel = "Total"

// separatorCell fills the separator row between the data and the totals.
const separatorCell = "----"

// RenderOptions configures Render.
type RenderOptions struct {
	// Year keeps only the groups of that year. 0 keeps every year.
	Year int
	// Exclude lists columns hidden in addition to DefaultExcluded.
	Exclude []Column
	// TotalExclude lists columns left blank in the totals row, in addition to
	// DefaultTotalExcluded.
	TotalExclude []Column
	// Format prints numbers. The zero value means DefaultNumberFormat.
	Format NumberFormat
	// Labels are the column headers. nil means English labels for USD and EUR.
	Labels Labels
}

func (o RenderOptions) numberFormat() NumberFormat {
	if o.Format == (NumberFormat{}) {
		return DefaultNumberFormat()
	}
	return o.Format
}

func (o RenderOptions) labels() Labels {
	if o.Labels == nil {
		return EnglishLabels("USD", "EUR")
	}
	return o.Labels
}

// Table is the rendered report of one (year, plan type) group.
type Table struct {
	Year     int
	PlanType string
	Columns  []Column // every column, starting with ColYear and ColPlanType
	Header   []string
	Rows     [][]string // formatted data rows
	Total    []string   // formatted totals row

	// Sums are the exact totals of the summed columns, before formatting.
	Sums map[Column]decimal.Decimal
}

// Separator returns the row printed between the data rows and the totals row.
func (t *Table) Separator() []string {
	row := make([]string, len(t.Header))
	for i := range row {
		row[i] = separatorCell
	}
	return row
}

// AllRows returns the data rows, the separator row and the totals row.
func (t *Table) AllRows() [][]string {
	all := slices.Clone(t.Rows)
	return append(all, t.Separator(), t.Total)
}

// group is the set of items of a (year, plan type) pair.
type group struct {
	year    int
	plan    string
	items   []LineItem
	indexes []int // index of each item in the input
}

// Render groups items by (sale year, plan type) and renders one table per group, in
// the order the groups are first seen.
//
// Every item is checked before anything is rendered: a nil item is a *ShapeError, an
// item without sale date or plan type is a *MissingFieldError. Items of a same group
// must share the same column schema, otherwise it is a *ShapeError.
// opts.Year does not relax these checks: an item without sale date fails the whole
// render even when its year would have been filtered out.
func Render(items []LineItem, opts RenderOptions) ([]*Table, error) {
	for i, item := range items {
		if item == nil {
			return nil, &ShapeError{Index: i, Reason: "nil entry"}
		}
		b := item.Base()
		if b.SaleDate.IsZero() {
			return nil, &MissingFieldError{Index: i, Order: b.Order, Field: "SaleDate"}
		}
		if b.PlanType == "" {
			return nil, &MissingFieldError{Index: i, Order: b.Order, Field: "PlanType"}
		}
	}

	type key struct {
		year int
		plan string
	}
	var groups []*group
	index := make(map[key]*group)
	for i, item := range items {
		b := item.Base()
		k := key{b.SaleDate.Year(), b.PlanType}
		if opts.Year != 0 && k.year != opts.Year {
			continue
		}
		g, ok := index[k]
		if !ok {
			g = &group{year: k.year, plan: k.plan}
			index[k] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, item)
		g.indexes = append(g.indexes, i)
	}

	tables := make([]*Table, 0, len(groups))
	for _, g := range groups {
		t, err := renderGroup(g, opts)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func renderGroup(g *group, opts RenderOptions) (*Table, error) {
	schema := g.items[0].Columns()
	for i, item := range g.items[1:] {
		if !slices.Equal(item.Columns(), schema) {
			return nil, &ShapeError{Index: g.indexes[i+1], Reason: "columns differ from the first " + g.plan + " entry"}
		}
	}

	excluded := append(slices.Clone(DefaultExcluded), opts.Exclude...)
	totalExcluded := append(slices.Clone(DefaultTotalExcluded), opts.TotalExclude...)
	format, labels := opts.numberFormat(), opts.labels()

	t := &Table{
		Year:     g.year,
		PlanType: g.plan,
		Columns:  []Column{ColYear, ColPlanType},
		Sums:     make(map[Column]decimal.Decimal),
	}
	for _, c := range schema {
		if c == ColYear || c == ColPlanType || slices.Contains(excluded, c) {
			continue
		}
		t.Columns = append(t.Columns, c)
	}
	for _, c := range t.Columns {
		t.Header = append(t.Header, labels.Label(c))
	}

	year := strconv.Itoa(g.year)
	for _, item := range g.items {
		row := []string{year, g.plan}
		for _, c := range t.Columns[2:] {
			row = append(row, format.FormatCell(item.Cell(c)))
		}
		t.Rows = append(t.Rows, row)
	}

	t.Total = []string{TotalLabel, ""}
	for _, c := range t.Columns[2:] {
		if slices.Contains(totalExcluded, c) {
			t.Total = append(t.Total, "")
			continue
		}
		sum := decimal.Zero
		for _, item := range g.items {
			// text values, like a missing conversion, count as zero.
			if cell := item.Cell(c); cell.Numeric {
				sum = sum.Add(cell.Number)
			}
		}
		t.Sums[c] = sum
		t.Total = append(t.Total, format.Format(sum))
	}
	return t, nil
}
