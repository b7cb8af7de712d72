// Package metrics wraps an external keyword-metrics endpoint providing
// search volume, CPC and competition figures.
package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cognicore/kwscout/pkg/kwscout/internalerr"
)

// MaxBatch is the per-call keyword limit imposed by the endpoint.
const MaxBatch = 50

// Money is a CPC value with its currency tag. The tag is carried through
// untouched; no conversion is performed and the value is treated as already
// numeric regardless of currency.
type Money struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// TrendPoint is one step of a keyword's historical volume trend.
type TrendPoint struct {
	Value float64 `json:"value"`
}

// Keyword holds the raw metrics for one keyword.
type Keyword struct {
	Keyword     string       `json:"keyword"`
	Volume      int          `json:"vol"`
	CPC         Money        `json:"cpc"`
	Competition float64      `json:"competition"`
	Trend       []TrendPoint `json:"trend"`
}

// Client calls the keyword-metrics endpoint. The endpoint is treated as a
// shared rate-limited resource: callers issue batches sequentially.
type Client struct {
	Endpoint string
	Country  string
	Currency string

	HTTPClient *http.Client
}

type lookupRequest struct {
	Keywords []string `json:"kw"`
	Country  string   `json:"country"`
	Currency string   `json:"currency"`
	APIKey   string   `json:"apiKey"`
}

// Lookup fetches metrics for up to MaxBatch keywords and returns them keyed
// by keyword string. Keywords absent from the response simply have no entry;
// that is valid output, not an error.
func (c *Client) Lookup(ctx context.Context, keywords []string, apiKey string) (map[string]Keyword, error) {
	if c.Endpoint == "" {
		return nil, fmt.Errorf("metrics: endpoint required")
	}
	if len(keywords) == 0 {
		return map[string]Keyword{}, nil
	}
	if len(keywords) > MaxBatch {
		return nil, fmt.Errorf("metrics: %d keywords exceeds batch limit %d: %w", len(keywords), MaxBatch, internalerr.ErrInvalidInput)
	}

	body, err := json.Marshal(lookupRequest{
		Keywords: keywords,
		Country:  c.Country,
		Currency: c.Currency,
		APIKey:   apiKey,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("metrics: http %d", resp.StatusCode)
	}

	var rows []Keyword
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("metrics: decode: %w", err)
	}

	out := make(map[string]Keyword, len(rows))
	for _, row := range rows {
		if row.Keyword == "" {
			continue
		}
		out[row.Keyword] = row
	}
	return out, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}
