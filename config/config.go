// Package config loads the settings of a report run.
//
// Settings are resolved in order, the last one wins: built-in defaults, the YAML
// configuration file, the environment (a .env file in the working directory is loaded
// first), and finally command line flags, which are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/taxreport"
	"github.com/etnz/taxreport/frankfurter"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvConfig            = "TAXREPORT_CONFIG"
	EnvRatesURL          = "TAXREPORT_RATES_URL"
	EnvBaseCurrency      = "TAXREPORT_BASE_CURRENCY"
	EnvReportingCurrency = "TAXREPORT_REPORTING_CURRENCY"
	EnvESPPDiscount      = "TAXREPORT_ESPP_DISCOUNT"
	EnvLocale            = "TAXREPORT_LOCALE"
	EnvLanguage          = "TAXREPORT_LANG"
	EnvHTTPTimeout       = "TAXREPORT_HTTP_TIMEOUT"
)

// Config holds the settings of a run.
type Config struct {
	RatesURL          string        `yaml:"rates_url"`
	BaseCurrency      string        `yaml:"base_currency"`
	ReportingCurrency string        `yaml:"reporting_currency"`
	ESPPDiscount      string        `yaml:"espp_discount"`
	Locale            string        `yaml:"locale"`   // number format: de, en, fr
	Language          string        `yaml:"language"` // column labels: en, de
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	p := taxreport.DefaultPolicy()
	return Config{
		RatesURL:          frankfurter.DefaultURL,
		BaseCurrency:      p.BaseCurrency,
		ReportingCurrency: p.ReportingCurrency,
		ESPPDiscount:      p.ESPPDiscount,
		Locale:            "de",
		Language:          "en",
		HTTPTimeout:       30 * time.Second,
	}
}

// Load resolves the settings from the defaults, the YAML file at path (or at
// $TAXREPORT_CONFIG if path is empty) and the environment.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("cannot load .env file (ignored): %v", err)
	}
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return fmt.Errorf("cannot parse config file %q: %w", path, err)
	}
	return nil
}

// applyEnv overrides settings with the environment variables found by lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvRatesURL:          &c.RatesURL,
		EnvBaseCurrency:      &c.BaseCurrency,
		EnvReportingCurrency: &c.ReportingCurrency,
		EnvESPPDiscount:      &c.ESPPDiscount,
		EnvLocale:            &c.Locale,
		EnvLanguage:          &c.Language,
	}
	for key, field := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}
	if v, ok := lookup(EnvHTTPTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvHTTPTimeout, v, err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// Validate checks currencies, locale, language and timeout.
func (c *Config) Validate() error {
	c.BaseCurrency = strings.ToUpper(strings.TrimSpace(c.BaseCurrency))
	c.ReportingCurrency = strings.ToUpper(strings.TrimSpace(c.ReportingCurrency))

	var errs error
	for _, code := range []string{c.BaseCurrency, c.ReportingCurrency} {
		if money.GetCurrency(code) == nil {
			errs = errors.Join(errs, fmt.Errorf("unknown currency %q", code))
		}
	}
	if _, err := taxreport.NumberFormatFor(c.Locale); err != nil {
		errs = errors.Join(errs, err)
	}
	if _, err := taxreport.LabelsFor(c.Language, c.BaseCurrency, c.ReportingCurrency); err != nil {
		errs = errors.Join(errs, err)
	}
	if c.HTTPTimeout <= 0 {
		errs = errors.Join(errs, fmt.Errorf("http timeout must be positive, got %v", c.HTTPTimeout))
	}
	return errs
}

// Policy returns the computation policy.
func (c Config) Policy() taxreport.Policy {
	return taxreport.Policy{
		ESPPDiscount:      c.ESPPDiscount,
		BaseCurrency:      c.BaseCurrency,
		ReportingCurrency: c.ReportingCurrency,
	}
}

// NumberFormat returns the number format of the configured locale.
func (c Config) NumberFormat() taxreport.NumberFormat {
	f, err := taxreport.NumberFormatFor(c.Locale)
	if err != nil {
		return taxreport.DefaultNumberFormat()
	}
	return f
}

// Labels returns the column labels of the configured language.
func (c Config) Labels() taxreport.Labels {
	l, err := taxreport.LabelsFor(c.Language, c.BaseCurrency, c.ReportingCurrency)
	if err != nil {
		return taxreport.EnglishLabels(c.BaseCurrency, c.ReportingCurrency)
	}
	return l
}
