package cmd

import (
	"bytes"
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/etnz/taxreport/config"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

const export = `Plan Type;Order Type;Qty.;Date Sold;Order Number;Adjusted Gain/Loss Per Share;Adjusted Cost Basis Per Share;Purchase Price
RSU;Sell;10;3/15/2022;A1;5;20;0
RSU;Sell STC;3;3/15/2022;A2;5;20;0
ESPP;Sell;10;6/1/2022;B1;0;20;17
RSU;Sell;1;1/10/2023;C1;1;30;0
`

// execute runs cmd with args and returns its exit status and output.
func execute(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")

	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("cannot parse %v: %v", args, err)
	}
	return cmd.Execute(context.Background(), f), out.String()
}

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(path, []byte(export), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReportCmd(t *testing.T) {
	status, out := execute(t, &reportCmd{}, "-raw", "-year", "2022", writeExport(t))
	if status != subcommands.ExitSuccess {
		t.Fatalf("report exited with %v", status)
	}
	for _, want := range []string{"## 2022 RSU", "## 2022 ESPP", "| 250,00 |", "| n/a |", "| 15% |"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"A2", "2023"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains %q:\n%s", unwanted, out)
		}
	}
}

func TestReportCmd_Options(t *testing.T) {
	status, out := execute(t, &reportCmd{}, "-raw", "-sell-to-cover", "-lang", "de", "-locale", "en", "-exclude", "reportinggain", writeExport(t))
	if status != subcommands.ExitSuccess {
		t.Fatalf("report exited with %v", status)
	}
	for _, want := range []string{"A2", "Verkaufsdatum", "| 250.00 |", "## 2023 RSU"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "n/a") {
		t.Errorf("output contains the excluded reporting gain:\n%s", out)
	}
}

func TestReportCmd_Exchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.5}}`))
	}))
	defer srv.Close()
	t.Setenv(config.EnvRatesURL, srv.URL)

	status, out := execute(t, &reportCmd{}, "-raw", "-exchange", "-year", "2023", writeExport(t))
	if status != subcommands.ExitSuccess {
		t.Fatalf("report exited with %v", status)
	}
	// C1 gains 1 USD, that is 0.50 EUR.
	if !strings.Contains(out, "| 1,00 | 0,50 |") {
		t.Errorf("output does not contain the converted gain:\n%s", out)
	}
}

func TestReportCmd_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")
	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"no file", nil, subcommands.ExitUsageError},
		{"two files", []string{"a.csv", "b.csv"}, subcommands.ExitUsageError},
		{"bad column", []string{"-exclude", "bogus", writeExport(t)}, subcommands.ExitUsageError},
		{"bad locale", []string{"-locale", "xx", writeExport(t)}, subcommands.ExitUsageError},
		{"missing file", []string{missing}, subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, _ := execute(t, &reportCmd{}, tt.args...); status != tt.want {
				t.Errorf("report exited with %v, want %v", status, tt.want)
			}
		})
	}
}

func TestRatesCmd(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		w.Write([]byte(`{"rates":{"GBP":0.81,"EUR":0.92}}`))
	}))
	defer srv.Close()
	t.Setenv(config.EnvRatesURL, srv.URL)

	status, out := execute(t, &ratesCmd{}, "-raw")
	if status != subcommands.ExitSuccess {
		t.Fatalf("rates exited with %v", status)
	}
	want := "## 1 USD on latest\n\n| Currency | Rate |\n|:---|---:|\n| EUR | 0.92 |\n| GBP | 0.81 |\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	status, out = execute(t, &ratesCmd{}, "-raw", "-base", "chf", "-date", "2023-01-13", "-target", "eur")
	if status != subcommands.ExitSuccess {
		t.Fatalf("rates exited with %v", status)
	}
	if strings.Contains(out, "GBP") || !strings.Contains(out, "| EUR | 0.92 |") {
		t.Errorf("output is not limited to EUR:\n%s", out)
	}

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{"/latest?base=USD", "/2023-01-13?base=CHF"}, paths); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestRatesCmd_Errors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	t.Setenv(config.EnvRatesURL, srv.URL)

	if status, _ := execute(t, &ratesCmd{}, "-date", "13/01/2023"); status != subcommands.ExitUsageError {
		t.Errorf("rates with an invalid date exited with %v, want %v", status, subcommands.ExitUsageError)
	}
	if status, _ := execute(t, &ratesCmd{}); status != subcommands.ExitFailure {
		t.Errorf("rates without service exited with %v, want %v", status, subcommands.ExitFailure)
	}
}

func TestRatesMarkdown(t *testing.T) {
	got := ratesMarkdown("2023-01-13", "USD", map[string]decimal.Decimal{"JPY": decimal.RequireFromString("130.5")})
	want := "## 1 USD on 2023-01-13\n\n| Currency | Rate |\n|:---|---:|\n| JPY | 130.5 |\n"
	if got != want {
		t.Errorf("ratesMarkdown() = %q, want %q", got, want)
	}
}

func TestPrintMarkdown(t *testing.T) {
	var out bytes.Buffer
	stdout = &out
	defer func() { stdout = os.Stdout }()

	printMarkdown("## Title\n\n| A |\n|---|\n| 1 |\n", false)
	if !strings.Contains(out.String(), "Title") {
		t.Errorf("styled output lost the title:\n%s", out.String())
	}
}

func TestTopicCmd(t *testing.T) {
	status, out := execute(t, &topicCmd{}, "-raw")
	if status != subcommands.ExitSuccess || !strings.Contains(out, "taxreport topic") {
		t.Errorf("topic exited with %v and printed:\n%s", status, out)
	}
	status, out = execute(t, &topicCmd{}, "-raw", "columns")
	if status != subcommands.ExitSuccess || !strings.Contains(out, "reportinggain") {
		t.Errorf("topic columns exited with %v and printed:\n%s", status, out)
	}
	if status, _ := execute(t, &topicCmd{}, "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope exited with %v, want %v", status, subcommands.ExitFailure)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"report", "rates", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("no completion for %q", name)
		}
	}
	if got := c.Sub["report"].Flags["exclude"].Predict(""); len(got) != 12 {
		t.Errorf("got %d column predictions, want 12: %v", len(got), got)
	}
}
