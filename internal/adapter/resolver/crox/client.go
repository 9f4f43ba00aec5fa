// Package crox resolves DJIA opening values from a geo.crox.net style
// service: GET {base}/YYYY/MM/DD answers with the opening value as plain
// text, or with a body starting with "error" when the date has no data.
package crox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/simaogato/geohash-backend/internal/domain"
)

// DefaultBaseURL is the public DJIA service used by geohashing tools
const DefaultBaseURL = "http://geo.crox.net/djia"

// maxBodyBytes bounds the response we are willing to read; a valid answer is a single number
const maxBodyBytes = 1 << 10

// Client implements domain.MarketValueResolver over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client for baseURL with a per-request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "geohash-backend/1.0",
	}
}

// URL returns the lookup URL for a date
func (c *Client) URL(date domain.Date) string {
	return c.baseURL + "/" + date.Time().Format("2006/01/02")
}

// Resolve implements domain.MarketValueResolver
func (c *Client) Resolve(ctx context.Context, date domain.Date) (domain.MarketValue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(date), nil)
	if err != nil {
		return domain.MarketValue{}, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.MarketValue{}, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
		}
		return domain.MarketValue{}, fmt.Errorf("%w: fetch %s: %v", domain.ErrUpstream, date, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.MarketValue{}, fmt.Errorf("%w: read response for %s: %v", domain.ErrUpstream, date, err)
	}
	body := strings.TrimSpace(string(raw))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.MarketValue{}, fmt.Errorf("%w: no DJIA opening for %s", domain.ErrNotFound, date)
	case resp.StatusCode != http.StatusOK:
		return domain.MarketValue{}, fmt.Errorf("%w: DJIA source answered %d for %s", domain.ErrUpstream, resp.StatusCode, date)
	case strings.HasPrefix(strings.ToLower(body), "error"):
		return domain.MarketValue{}, fmt.Errorf("%w: no DJIA opening for %s: %s", domain.ErrNotFound, date, errorDetail(body))
	}

	value, err := domain.ParseMarketValue(body)
	if err != nil {
		return domain.MarketValue{}, fmt.Errorf("DJIA source for %s: %w", date, err)
	}

	return value, nil
}

// errorDetail flattens "error\ndata not available yet" into one line
func errorDetail(body string) string {
	lines := strings.Fields(strings.TrimPrefix(strings.ToLower(body), "error"))
	if len(lines) == 0 {
		return "no detail"
	}
	return strings.Join(lines, " ")
}
