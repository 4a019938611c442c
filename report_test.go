package taxreport

import (
	"errors"
	"testing"

	"github.com/etnz/taxreport/date"
	"github.com/google/go-cmp/cmp"
)

func rsu(order string, sold date.Date, shares, gain string) LineItem {
	return StandardLine{Line{
		Order:                 order,
		SaleDate:              sold,
		OrderType:             "Sell",
		PlanType:              RSU,
		SharesSold:            dec(shares),
		PurchaseValuePerShare: dec("20"),
		GainLossPerShare:      dec(gain),
		SaleValuePerShare:     dec("20").Add(dec(gain)),
		OrderValue:            dec("20").Add(dec(gain)).Mul(dec(shares)),
		Gain:                  dec(gain).Mul(dec(shares)),
	}}
}

func espp(order string, sold date.Date, shares string) LineItem {
	return ESPPLine{Line: Line{
		Order:                 order,
		SaleDate:              sold,
		OrderType:             "Sell",
		PlanType:              ESPP,
		SharesSold:            dec(shares),
		PurchaseValuePerShare: dec("17"),
		GainLossPerShare:      dec("3"),
		SaleValuePerShare:     dec("20"),
		OrderValue:            dec("20").Mul(dec(shares)),
		Gain:                  dec("3").Mul(dec(shares)),
		ReportingGain:         Converted(dec("2.7").Mul(dec(shares))),
	}, Discount: "15%"}
}

func TestRender(t *testing.T) {
	items := []LineItem{
		rsu("A", date.New(2022, 3, 1), "10", "5"),
		espp("B", date.New(2022, 6, 1), "2"),
		rsu("C", date.New(2023, 1, 2), "1", "1"),
		rsu("D", date.New(2022, 9, 1), "4", "-1"),
	}

	tables, err := Render(items, RenderOptions{})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	var groups []string
	for _, tb := range tables {
		groups = append(groups, tb.PlanType+" "+tb.Rows[0][0])
	}
	if diff := cmp.Diff([]string{"RSU 2022", "ESPP 2022", "RSU 2023"}, groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}

	rsu2022 := tables[0]
	wantHeader := []string{"Year", "PlanType", "Order", "SaleDate", "Type", "Shares", "PurchaseValue", "Gain/Loss", "SaleValue", "OrderValue", "Gain (USD)", "Gain (EUR)"}
	if diff := cmp.Diff(wantHeader, rsu2022.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	wantRows := [][]string{
		{"2022", "RSU", "A", "01.03.2022", "Sell", "10,00", "20,00", "5,00", "25,00", "250,00", "50,00", "n/a"},
		{"2022", "RSU", "D", "01.09.2022", "Sell", "4,00", "20,00", "-1,00", "19,00", "76,00", "-4,00", "n/a"},
		{"----", "----", "----", "----", "----", "----", "----", "----", "----", "----", "----", "----"},
		{"Total", "", "", "", "", "14,00", "40,00", "", "44,00", "326,00", "46,00", "0,00"},
	}
	if diff := cmp.Diff(wantRows, rsu2022.AllRows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if got := rsu2022.Sums[ColGain].String(); got != "46" {
		t.Errorf("gain sum = %s, want 46", got)
	}

	espp2022 := tables[1]
	if got, want := espp2022.Header[len(espp2022.Header)-1], "Discount (incl.)"; got != want {
		t.Errorf("last ESPP header = %q, want %q", got, want)
	}
	if got := espp2022.Rows[0][len(espp2022.Header)-1]; got != "15%" {
		t.Errorf("discount = %q, want 15%%", got)
	}
	if got := espp2022.Sums[ColReportingGain].String(); got != "5.4" {
		t.Errorf("reporting gain sum = %s, want 5.4", got)
	}
}

func TestRender_Year(t *testing.T) {
	items := []LineItem{
		rsu("A", date.New(2022, 3, 1), "10", "5"),
		rsu("B", date.New(2023, 3, 1), "10", "5"),
		rsu("C", date.New(2022, 5, 1), "1", "5"),
	}
	tables, err := Render(items, RenderOptions{Year: 2022})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	if tables[0].Year != 2022 || len(tables[0].Rows) != 2 {
		t.Errorf("got year %d with %d rows, want 2022 with 2 rows", tables[0].Year, len(tables[0].Rows))
	}

	tables, err = Render(items, RenderOptions{Year: 2021})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("got %d tables, want 0", len(tables))
	}
}

func TestRender_Exclude(t *testing.T) {
	items := []LineItem{rsu("A", date.New(2022, 3, 1), "10", "5")}
	tables, err := Render(items, RenderOptions{
		Exclude:      []Column{ColOrder, ColReportingGain},
		TotalExclude: []Column{ColShares},
		Labels:       GermanLabels("USD", "EUR"),
		Format:       NumberFormat{Decimal: ".", Thousand: ",", Fraction: 2},
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	tb := tables[0]
	wantHeader := []string{"Year", "PlanType", "Verkaufsdatum", "Type", "Anz.", "Kaufwert", "Gewinn/Verlust", "Verkaufswert", "Orderwert", "KapitalErtrag (USD)"}
	if diff := cmp.Diff(wantHeader, tb.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	wantTotal := []string{"Total", "", "", "", "", "20.00", "", "25.00", "250.00", "50.00"}
	if diff := cmp.Diff(wantTotal, tb.Total); diff != "" {
		t.Errorf("total mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Errors(t *testing.T) {
	ok := rsu("A", date.New(2022, 3, 1), "10", "5")
	noDate := rsu("B", date.Date{}, "1", "1")
	noPlan := StandardLine{Line{Order: "C", SaleDate: date.New(2022, 1, 1)}}

	t.Run("missing sale date", func(t *testing.T) {
		_, err := Render([]LineItem{ok, noDate}, RenderOptions{Year: 2022})
		var missing *MissingFieldError
		if !errors.As(err, &missing) {
			t.Fatalf("Render() error = %v, want a *MissingFieldError", err)
		}
		if missing.Index != 1 || missing.Field != "SaleDate" || missing.Order != "B" {
			t.Errorf("got %+v, want index 1 field SaleDate order B", missing)
		}
	})
	t.Run("missing plan type", func(t *testing.T) {
		_, err := Render([]LineItem{noPlan}, RenderOptions{})
		var missing *MissingFieldError
		if !errors.As(err, &missing) || missing.Field != "PlanType" {
			t.Fatalf("Render() error = %v, want a missing PlanType", err)
		}
	})
	t.Run("nil entry", func(t *testing.T) {
		_, err := Render([]LineItem{ok, nil}, RenderOptions{})
		var shape *ShapeError
		if !errors.As(err, &shape) || shape.Index != 1 {
			t.Fatalf("Render() error = %v, want a *ShapeError at index 1", err)
		}
	})
	t.Run("mixed schema", func(t *testing.T) {
		odd := ESPPLine{Line: ok.Base()} // an RSU line with the ESPP schema
		_, err := Render([]LineItem{ok, odd}, RenderOptions{})
		var shape *ShapeError
		if !errors.As(err, &shape) || shape.Index != 1 {
			t.Fatalf("Render() error = %v, want a *ShapeError at index 1", err)
		}
	})
}

func TestRender_Empty(t *testing.T) {
	tables, err := Render(nil, RenderOptions{})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("got %d tables, want 0", len(tables))
	}
}
