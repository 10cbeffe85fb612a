// Package funfact is a thin passthrough client for a numbers-trivia
// API. Given a stored string's length it fetches one trivia sentence.
// It exists for color in the API surface; nothing in the core depends
// on it.
package funfact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

// ErrUpstream marks failures of the external API so the transport layer
// can map them to a bad-gateway response instead of a server error.
var ErrUpstream = errors.New("fun fact service unavailable")

// Client talks to a numbersapi-compatible endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New builds a client. The limiter caps us at one upstream request per
// second with a small burst, which is plenty for a side-channel feature
// and polite to the free API.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// NumberFact returns one plain-text trivia sentence about n.
func (c *Client) NumberFact(ctx context.Context, n int) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "rate limiter interrupted")
	}

	url := fmt.Sprintf("%s/%d", c.baseURL, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrUpstream, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(ErrUpstream, "unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", errors.Wrap(ErrUpstream, err.Error())
	}
	return strings.TrimSpace(string(body)), nil
}
