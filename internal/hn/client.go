package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pders01/hnews/internal/config"
)

const maxBodyBytes = 10 << 20

// Client issues search requests against the Algolia HN endpoint.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewClient builds a client from the api section of cfg. A zero
// HTTPTimeout leaves requests without a deadline.
func NewClient(cfg *config.Config) *Client {
	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return &Client{
		client: &http.Client{
			Timeout: cfg.API.HTTPTimeout,
		},
		baseURL:   baseURL,
		userAgent: cfg.API.UserAgent,
	}
}

// SearchURL returns the request URL for query.
func (c *Client) SearchURL(query string) string {
	return BuildSearchURL(c.baseURL, query)
}

// BuildSearchURL sets the percent-encoded query parameter on base. Existing
// parameters on base are kept.
func BuildSearchURL(base, query string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + url.Values{"query": {query}}.Encode()
	}
	params := u.Query()
	params.Set("query", query)
	u.RawQuery = params.Encode()
	return u.String()
}

// Search is Fetch on the URL built for query.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	return c.Fetch(ctx, c.SearchURL(query))
}

// Fetch performs a GET on rawURL and decodes the hits array. Non-2xx
// responses yield a *StatusError; bodies without a hits array yield
// ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	var raw rawResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Hits == nil {
		return nil, fmt.Errorf("%w: missing hits array", ErrMalformedResponse)
	}

	hits := *raw.Hits
	assignKeys(hits)

	return &Response{
		Hits:   hits,
		NbHits: raw.NbHits,
	}, nil
}
