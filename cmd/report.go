package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxreport"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	sellToCover  bool
	year         int
	exchange     bool
	exclude      string
	totalExclude string
	locale       string
	lang         string
	raw          bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "realized gains of RSU and ESPP sales, per year and plan" }
func (*reportCmd) Usage() string {
	return `taxreport report [-year <year>] [-exchange] [-sell-to-cover] [-exclude <col,...>] [-locale <locale>] [-lang <lang>] [-raw] <file.csv>

  Reads a broker export of sold shares (semicolon separated) and prints one table
  per sale year and plan type, with a totals row.

  Columns: order, saledate, ordertype, shares, purchasevalue, gainloss, salevalue,
  ordervalue, gain, reportinggain, selltocover, discount.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Only report sales of that year. 0 reports every year.")
	f.BoolVar(&c.exchange, "exchange", false, "Convert gains into the reporting currency using the daily reference rates.")
	f.BoolVar(&c.sellToCover, "sell-to-cover", false, "Include sell-to-cover orders.")
	f.StringVar(&c.exclude, "exclude", "", "Comma separated list of columns to hide.")
	f.StringVar(&c.totalExclude, "total-exclude", "", "Comma separated list of columns to leave blank in the totals row.")
	f.StringVar(&c.locale, "locale", "", "Number format (de, en, fr). Defaults to the configuration.")
	f.StringVar(&c.lang, "lang", "", "Column labels (en, de). Defaults to the configuration.")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of styled output.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "report expects exactly one CSV file")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.locale != "" {
		cfg.Locale = c.locale
	}
	if c.lang != "" {
		cfg.Language = c.lang
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in options: %v\n", err)
		return subcommands.ExitUsageError
	}

	exclude, err := taxreport.ParseColumns(c.exclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -exclude: %v\n", err)
		return subcommands.ExitUsageError
	}
	totalExclude, err := taxreport.ParseColumns(c.totalExclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -total-exclude: %v\n", err)
		return subcommands.ExitUsageError
	}

	filename := f.Arg(0)
	file, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	src, err := taxreport.ReadCSV(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	var rates taxreport.RateSource
	if c.exchange {
		rates = newRateCache(cfg)
	}

	opts := taxreport.Options{
		Policy:             cfg.Policy(),
		IncludeSellToCover: c.sellToCover,
		Render: taxreport.RenderOptions{
			Year:         c.year,
			Exclude:      exclude,
			TotalExclude: totalExclude,
			Format:       cfg.NumberFormat(),
			Labels:       cfg.Labels(),
		},
	}
	tables, err := taxreport.BuildReport(ctx, src, opts, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report for %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	if len(tables) == 0 {
		fmt.Fprintln(os.Stderr, "No sales to report.")
		return subcommands.ExitSuccess
	}

	printMarkdown(taxreport.Markdown(tables), c.raw)
	return subcommands.ExitSuccess
}
