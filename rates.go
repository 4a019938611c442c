package taxreport

import (
	"context"
	"errors"
	"log"
	"maps"

	"github.com/etnz/taxreport/date"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Latest is the day identifier of the most recent rates.
const Latest = "latest"

// RateFetcher fetches all the exchange rates of a day relative to a base currency.
//
// day is either an ISO-8601 date or Latest. A fetcher that receives rates that are
// not a currency to rate mapping must return a *MalformedRatesError.
type RateFetcher interface {
	FetchRates(ctx context.Context, day, base string) (map[string]decimal.Decimal, error)
}

// RateSource returns the rate to convert one unit of base into target on a given day.
type RateSource interface {
	Rate(ctx context.Context, day date.Date, base, target string) (decimal.Decimal, bool)
}

// RateCache memoizes the rates of a RateFetcher for the lifetime of a run.
//
// Entries are keyed by (day, base) and hold the whole response, so that any other
// target currency of the same day is served from the cache. Entries never expire.
// Failed fetches are not cached.
type RateCache struct {
	fetcher RateFetcher
	entries *cache.Cache
	fetches int
}

// NewRateCache returns an empty cache in front of f.
func NewRateCache(f RateFetcher) *RateCache {
	return &RateCache{
		fetcher: f,
		entries: cache.New(cache.NoExpiration, 0),
	}
}

// Rate implements RateSource. The zero date has no rate.
func (c *RateCache) Rate(ctx context.Context, day date.Date, base, target string) (decimal.Decimal, bool) {
	if day.IsZero() {
		return decimal.Zero, false
	}
	return c.Lookup(ctx, day.String(), base, target)
}

// Lookup returns the rate from base to target on day (ISO-8601 or Latest).
func (c *RateCache) Lookup(ctx context.Context, day, base, target string) (decimal.Decimal, bool) {
	if base == target {
		return decimal.NewFromInt(1), true
	}
	rates, ok := c.rates(ctx, day, base)
	if !ok {
		return decimal.Zero, false
	}
	rate, ok := rates[target]
	return rate, ok
}

// Rates returns a copy of all the rates of a day relative to base, fetching them at most once.
//
// A fetch failure is logged and reported as false. It panics with the
// *MalformedRatesError of the fetcher, if any.
func (c *RateCache) Rates(ctx context.Context, day, base string) (map[string]decimal.Decimal, bool) {
	rates, ok := c.rates(ctx, day, base)
	if !ok {
		return nil, false
	}
	return maps.Clone(rates), true
}

// rates returns the cached map itself, callers must not modify it.
func (c *RateCache) rates(ctx context.Context, day, base string) (map[string]decimal.Decimal, bool) {
	key := base + "/" + day
	if v, found := c.entries.Get(key); found {
		return v.(map[string]decimal.Decimal), true
	}

	c.fetches++
	rates, err := c.fetcher.FetchRates(ctx, day, base)
	var malformed *MalformedRatesError
	if errors.As(err, &malformed) {
		panic(malformed)
	}
	if err != nil {
		log.Printf("no %s rates for %s: %v", base, day, err)
		return nil, false
	}
	c.entries.Set(key, rates, cache.NoExpiration)
	return rates, true
}

// Fetches returns the number of calls made to the underlying fetcher.
func (c *RateCache) Fetches() int { return c.fetches }

// Len returns the number of cached (day, base) entries.
func (c *RateCache) Len() int { return c.entries.ItemCount() }
