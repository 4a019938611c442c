// Package cmd implements the CLI application to build equity compensation tax reports.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/taxreport"
	"github.com/etnz/taxreport/config"
	"github.com/etnz/taxreport/frankfurter"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&ratesCmd{}, "reports")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file. Defaults to $"+config.EnvConfig)
var verbose = flag.Bool("v", false, "Log diagnostics (HTTP requests, unparseable dates, missing rates) to stderr")

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// loadConfig sets up logging and loads the configuration.
func loadConfig() (config.Config, error) {
	if *verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	return config.Load(*configFile)
}

// newRateCache returns an empty rate cache in front of the configured rate service.
func newRateCache(cfg config.Config) *taxreport.RateCache {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	return taxreport.NewRateCache(frankfurter.New(cfg.RatesURL, client))
}

// printMarkdown prints md styled for the terminal, or as is if raw is true.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		log.Printf("cannot style markdown: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("cannot style markdown: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
