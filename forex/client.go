// Package forex retrieves currency exchange rates from an external provider
// and keeps the fetched quotes in a store.
//
// All rates are quoted against a single base currency: a rate r for code C
// means that one unit of the base currency is worth r units of C.
package forex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultEndpoint is the provider API root used when none is configured.
const DefaultEndpoint = "https://api.currencylayer.com"

// Fetcher fetches the latest rates of codes against base.
type Fetcher interface {
	Fetch(ctx context.Context, base string, codes []string) (map[string]decimal.Decimal, error)
}

// Client is the provider HTTP client. Its zero value is not usable, see NewClient.
type Client struct {
	Endpoint  string
	AccessKey string
	HTTP      *http.Client
}

// NewClient returns a client for the provider at endpoint.
func NewClient(endpoint, accessKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:  strings.TrimSuffix(endpoint, "/"),
		AccessKey: accessKey,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch gets the rates of all codes in a single request.
//
// The provider answers with quotes keyed by the concatenation of the base and
// the quoted code, e.g. "USDEUR".
func (c *Client) Fetch(ctx context.Context, base string, codes []string) (map[string]decimal.Decimal, error) {
	if len(codes) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	q := url.Values{}
	q.Set("access_key", c.AccessKey)
	q.Set("source", base)
	q.Set("currencies", strings.Join(codes, ","))
	addr := c.Endpoint + "/live?" + q.Encode()

	var jobj any
	if err := c.get(ctx, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch rates for %s: %w", strings.Join(codes, ","), err)
	}

	if ok, _ := jsonpath.Get("$.success", jobj); ok != true {
		info, _ := jsonpath.Get("$.error.info", jobj)
		if info == nil {
			info = "unknown error"
		}
		return nil, fmt.Errorf("rate provider refused the request: %v", info)
	}

	rates := make(map[string]decimal.Decimal, len(codes))
	for _, code := range codes {
		path := fmt.Sprintf("$.quotes.%s%s", base, code)
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			// missing quotes are reported by the caller
			continue
		}
		val, ok := jval.(float64)
		if !ok {
			return nil, fmt.Errorf("error parsing %q: %q not a number %v", code, path, jval)
		}
		rates[code] = decimal.NewFromFloat(val)
	}
	log.Info().Str("base", base).Strs("codes", codes).Int("quotes", len(rates)).Msg("rates fetched")
	return rates, nil
}

// get performs an HTTP GET and decodes the JSON response into data.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return errors.Join(errors.New("invalid provider response"), err)
	}
	return nil
}
