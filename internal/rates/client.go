// Package rates implements the country/exchange-rate refresh pipeline.
// It is glue around two public feeds: a latest-rates endpoint and a
// countries endpoint used to attach a display name to each currency.
// The pipeline is unrelated to the string corpus and must never take
// the server down with it.
package rates

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

// Client fetches the two external feeds.
type Client struct {
	ratesURL     string
	countriesURL string
	http         *http.Client
	limiter      *rate.Limiter
}

// NewClient builds a client for the given feed URLs. countriesURL may
// be empty, in which case country names are skipped.
func NewClient(ratesURL, countriesURL string) *Client {
	return &Client{
		ratesURL:     ratesURL,
		countriesURL: countriesURL,
		http:         &http.Client{Timeout: 15 * time.Second},
		limiter:      rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// ratesResponse mirrors the open.er-api.com latest-rates shape.
type ratesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// FetchRates returns currency code -> units per base currency.
func (c *Client) FetchRates(ctx context.Context) (map[string]float64, error) {
	var parsed ratesResponse
	if err := c.getJSON(ctx, c.ratesURL, &parsed); err != nil {
		return nil, err
	}
	if parsed.Result != "" && parsed.Result != "success" {
		return nil, errors.Newf("rates feed returned result %q", parsed.Result)
	}
	if len(parsed.Rates) == 0 {
		return nil, errors.New("rates feed returned no rates")
	}
	return parsed.Rates, nil
}

// countryEntry mirrors the restcountries fields we ask for.
type countryEntry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
}

// FetchCountries returns currency code -> country name. Codes used by
// several countries keep the first name seen; this is display data, not
// an authority.
func (c *Client) FetchCountries(ctx context.Context) (map[string]string, error) {
	if c.countriesURL == "" {
		return map[string]string{}, nil
	}

	var entries []countryEntry
	if err := c.getJSON(ctx, c.countriesURL, &entries); err != nil {
		return nil, err
	}

	byCode := make(map[string]string)
	for _, e := range entries {
		for code := range e.Currencies {
			if _, ok := byCode[code]; !ok {
				byCode[code] = e.Name.Common
			}
		}
	}
	return byCode, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter interrupted")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", url)
	}
	return nil
}
