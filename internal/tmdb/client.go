package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tssk/internal/services"
)

type findResponse struct {
	TVResults []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"tv_results"`
}

type tvDetails struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Client resolves series lifecycle status from TMDB.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FindByTVDB maps a TVDB id to the TMDB show id.
func (c *Client) FindByTVDB(ctx context.Context, tvdbID int64) (int64, error) {
	if tvdbID <= 0 {
		return 0, services.Wrap(services.ErrNotFound, "tmdb", "find", "tvdb id must be positive", nil)
	}
	params := url.Values{}
	params.Set("external_source", "tvdb_id")
	var payload findResponse
	if err := c.get(ctx, "/find/"+strconv.FormatInt(tvdbID, 10), params, &payload); err != nil {
		return 0, err
	}
	if len(payload.TVResults) == 0 {
		return 0, services.Wrap(services.ErrNotFound, "tmdb", "find",
			fmt.Sprintf("no tv result for tvdb %d", tvdbID), nil)
	}
	return payload.TVResults[0].ID, nil
}

// TVStatus returns the status string TMDB reports for a show, such as
// "Returning Series", "Ended" or "Canceled".
func (c *Client) TVStatus(ctx context.Context, showID int64) (string, error) {
	if showID <= 0 {
		return "", errors.New("show id must be positive")
	}
	var payload tvDetails
	if err := c.get(ctx, "/tv/"+strconv.FormatInt(showID, 10), nil, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.Status), nil
}

// LookupStatus resolves the TMDB status for a TVDB id in two calls.
func (c *Client) LookupStatus(ctx context.Context, tvdbID int64) (string, error) {
	showID, err := c.FindByTVDB(ctx, tvdbID)
	if err != nil {
		return "", err
	}
	return c.TVStatus(ctx, showID)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrConnectivity, "tmdb", "request",
			fmt.Sprintf("latency=%v", latency), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, "tmdb", "request",
			fmt.Sprintf("%s returned 404 (latency=%v)", path, latency), nil)
	case resp.StatusCode != http.StatusOK:
		return services.Wrap(services.ErrExternalTool, "tmdb", "request",
			fmt.Sprintf("%s returned %d (latency=%v)", path, resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
