// Package suggest wraps an autocomplete-style search-suggest endpoint.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is an OpenSearch-compatible suggest endpoint.
const DefaultBaseURL = "https://suggestqueries.google.com/complete/search?client=firefox"

// Client fetches suggestions for a query string. The wire shape is the
// OpenSearch suggestion format: ["<query>",["s1","s2",...],...].
type Client struct {
	BaseURL string

	HTTPClient *http.Client
}

// Fetch returns the suggestion strings for one query. Callers treat any
// returned error the same as an empty result; the client itself never
// retries.
func (c *Client) Fetch(ctx context.Context, query string) ([]string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	sep := "?"
	if u, err := url.Parse(base); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	endpoint := base + sep + "q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest: http %d", resp.StatusCode)
	}

	// First element echoes the query, second is the suggestion list.
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("suggest: decode: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("suggest: unexpected payload shape")
	}

	var suggestions []string
	if err := json.Unmarshal(payload[1], &suggestions); err != nil {
		return nil, fmt.Errorf("suggest: decode suggestions: %w", err)
	}
	return suggestions, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 8 * time.Second}
}
