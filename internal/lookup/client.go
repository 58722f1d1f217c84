// Package lookup talks to the location lookup service: free-text search
// returning grouped candidates, and a fire-and-forget popularity counter.
// It also bundles the static popular-locations seed shown for empty
// queries.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/skytrips/search-core/internal/domain"
)

// Client is the engine-facing interface for the lookup service. Defining
// it here lets the autocomplete tests inject a double without a server.
type Client interface {
	// Search returns grouped candidates for the free-text query.
	Search(ctx context.Context, query string) ([]domain.LocationGroup, error)
	// MarkPopular bumps the popularity counter for the given location
	// code. Best effort: callers swallow the error.
	MarkPopular(ctx context.Context, code string) error
}

// HTTPClient implements Client over the lookup service's wire contract:
// GET /locations?query= and PATCH /locations/{code}/popularity.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the service at baseURL. A nil
// httpClient gets a default with a sane timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{baseURL: baseURL, http: httpClient}
}

// Search implements Client.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]domain.LocationGroup, error) {
	u := fmt.Sprintf("%s/locations?query=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup.HTTPClient.Search: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup.HTTPClient.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup.HTTPClient.Search: unexpected status %d", resp.StatusCode)
	}

	var groups []domain.LocationGroup
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("lookup.HTTPClient.Search: decode: %w", err)
	}
	return groups, nil
}

// MarkPopular implements Client.
func (c *HTTPClient) MarkPopular(ctx context.Context, code string) error {
	u := fmt.Sprintf("%s/locations/%s/popularity", c.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, nil)
	if err != nil {
		return fmt.Errorf("lookup.HTTPClient.MarkPopular: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("lookup.HTTPClient.MarkPopular: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("lookup.HTTPClient.MarkPopular: unexpected status %d", resp.StatusCode)
	}
	return nil
}
