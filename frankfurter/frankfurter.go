// Package frankfurter fetches daily reference exchange rates from a Frankfurter
// compatible service (https://www.frankfurter.app), which publishes the rates of the
// European Central Bank.
package frankfurter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/taxreport"
	"github.com/shopspring/decimal"
)

// DefaultURL is the public Frankfurter service.
const DefaultURL = "https://api.frankfurter.app"

// ratesPath locates the rates in a response:
//
//	{
//	  "amount": 1.0,
//	  "base": "USD",
//	  "date": "2023-01-13",
//	  "rates": {
//	    "AUD": 1.4358,
//	    "EUR": 0.92293,
//	    ...
//	  }
//	}
const ratesPath = "$.rates"

// Client fetches rates from a Frankfurter service.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ taxreport.RateFetcher = (*Client)(nil)

// New returns a Client for the service at baseURL (DefaultURL if empty), using client
// (http.DefaultClient if nil).
func New(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

// FetchRates returns the rates of one unit of base on day (ISO-8601 or "latest").
//
// Any transport error, non 200 status, invalid JSON or missing rates is an error. Rates
// that are present but not an object are a *taxreport.MalformedRatesError.
func (c *Client) FetchRates(ctx context.Context, day, base string) (map[string]decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/%s?base=%s", c.baseURL, url.PathEscape(day), url.QueryEscape(base))

	var jobj any
	if err := jwget(ctx, c.client, addr, &jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(ratesPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("no rates in response for %s: %w", day, err)
	}
	if jval == nil {
		return nil, fmt.Errorf("no rates in response for %s: rates is null", day)
	}
	obj, ok := jval.(map[string]any)
	if !ok {
		return nil, &taxreport.MalformedRatesError{Day: day, Base: base, Got: jval}
	}

	rates := make(map[string]decimal.Decimal, len(obj))
	for cur, v := range obj {
		num, ok := v.(json.Number)
		if !ok {
			log.Printf("ignoring %s rate of %s: %v is not a number", cur, day, v)
			continue
		}
		rate, err := decimal.NewFromString(num.String())
		if err != nil {
			log.Printf("ignoring %s rate of %s: %v", cur, day, err)
			continue
		}
		rates[cur] = rate
	}
	return rates, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
// Numbers are decoded as json.Number to keep every digit.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("invalid JSON from %v%v: %w", req.URL.Host, req.URL.Path, err)
	}
	return nil
}
