package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/etnz/taxreport"
	"github.com/etnz/taxreport/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// ratesCmd holds the flags for the 'rates' subcommand.
type ratesCmd struct {
	base   string
	day    string
	target string
	raw    bool
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "daily reference exchange rates" }
func (*ratesCmd) Usage() string {
	return `taxreport rates [-base <currency>] [-date <date>|latest] [-target <currency>] [-raw]

  Prints the reference exchange rates of one unit of the base currency, as used by
  'report -exchange'.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "", "Base currency. Defaults to the configured base currency.")
	f.StringVar(&c.day, "date", taxreport.Latest, "Day of the rates (YYYY-MM-DD) or 'latest'.")
	f.StringVar(&c.target, "target", "", "Only print the rate to that currency.")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of styled output.")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.base != "" {
		cfg.BaseCurrency = c.base
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in options: %v\n", err)
		return subcommands.ExitUsageError
	}

	day := c.day
	if day != taxreport.Latest {
		d, err := date.Parse(day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		day = d.String()
	}

	rates, ok := newRateCache(cfg).Rates(ctx, day, cfg.BaseCurrency)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no %s rates for %s (use -v for details)\n", cfg.BaseCurrency, day)
		return subcommands.ExitFailure
	}

	if target := strings.ToUpper(c.target); target != "" {
		rate, found := rates[target]
		if !found {
			fmt.Fprintf(os.Stderr, "Error: no %s to %s rate for %s\n", cfg.BaseCurrency, target, day)
			return subcommands.ExitFailure
		}
		rates = map[string]decimal.Decimal{target: rate}
	}

	printMarkdown(ratesMarkdown(day, cfg.BaseCurrency, rates), c.raw)
	return subcommands.ExitSuccess
}

// ratesMarkdown renders rates as a table sorted by currency.
func ratesMarkdown(day, base string, rates map[string]decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 1 %s on %s\n\n", base, day)
	b.WriteString("| Currency | Rate |\n|:---|---:|\n")
	for _, cur := range slices.Sorted(maps.Keys(rates)) {
		fmt.Fprintf(&b, "| %s | %s |\n", cur, rates[cur].String())
	}
	return b.String()
}
