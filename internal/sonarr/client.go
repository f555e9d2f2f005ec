package sonarr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"tssk/internal/catalog"
	"tssk/internal/logging"
	"tssk/internal/services"
)

// apiPaths are probed in order during discovery. The second covers
// reverse-proxy setups that mount Sonarr under /sonarr.
var apiPaths = []string{"/api/v3", "/sonarr/api/v3"}

// Client talks to the Sonarr v3 API.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	logger     *slog.Logger

	mu     sync.Mutex
	apiURL string
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

// WithRetry sets the number of attempts per request and the base backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		if attempts < 1 {
			attempts = 1
		}
		c.attempts = uint(attempts)
		c.delay = delay
	}
}

// WithLogger sets the logger used for retry and discovery messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "sonarr")
	}
}

// New creates a Sonarr client. Any path on baseURL is dropped; discovery
// decides where the API lives.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "sonarr", "init", "api key required", nil)
	}
	server, err := serverRoot(baseURL)
	if err != nil {
		return nil, err
	}
	client := &Client{
		serverURL:  server,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		attempts:   3,
		delay:      500 * time.Millisecond,
		logger:     logging.NewComponentLogger(nil, "sonarr"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func serverRoot(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", services.Wrap(services.ErrConfiguration, "sonarr", "init", fmt.Sprintf("invalid url %q", raw), err)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

// Discover probes the known API roots and remembers the first healthy one.
func (c *Client) Discover(ctx context.Context) (string, error) {
	tried := make([]string, 0, len(apiPaths))
	var lastErr error
	for _, path := range apiPaths {
		candidate := c.serverURL + path
		tried = append(tried, candidate)
		err := c.once(ctx, candidate+"/health", nil)
		if err == nil {
			c.mu.Lock()
			c.apiURL = candidate
			c.mu.Unlock()
			c.logger.Info("connected to sonarr", logging.String("api_url", candidate))
			return candidate, nil
		}
		lastErr = err
		c.logger.Debug("sonarr probe failed", logging.String("url", candidate), logging.Error(err))
	}
	return "", services.Wrap(services.ErrConnectivity, "sonarr", "discover",
		"no api root answered; tried "+strings.Join(tried, ", "), lastErr)
}

// APIURL returns the discovered API root, or an empty string.
func (c *Client) APIURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiURL
}

func (c *Client) ensureAPI(ctx context.Context) (string, error) {
	if api := c.APIURL(); api != "" {
		return api, nil
	}
	return c.Discover(ctx)
}

// ListSeries returns every series known to Sonarr in API order.
func (c *Client) ListSeries(ctx context.Context) ([]catalog.Series, error) {
	api, err := c.ensureAPI(ctx)
	if err != nil {
		return nil, err
	}
	var payload []seriesResource
	if err := c.get(ctx, api+"/series", &payload); err != nil {
		return nil, services.Wrap(services.ErrConnectivity, "sonarr", "list series", "", err)
	}
	series := make([]catalog.Series, 0, len(payload))
	for _, r := range payload {
		series = append(series, r.toCatalog())
	}
	return series, nil
}

// ListEpisodes returns the episodes of one series.
func (c *Client) ListEpisodes(ctx context.Context, seriesID int64) ([]catalog.Episode, error) {
	api, err := c.ensureAPI(ctx)
	if err != nil {
		return nil, err
	}
	endpoint := api + "/episode?seriesId=" + strconv.FormatInt(seriesID, 10)
	var payload []episodeResource
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, services.Wrap(services.ErrConnectivity, "sonarr", "list episodes",
			fmt.Sprintf("series %d", seriesID), err)
	}
	episodes := make([]catalog.Episode, 0, len(payload))
	for _, r := range payload {
		episodes = append(episodes, r.toCatalog(seriesID))
	}
	return episodes, nil
}

// statusError is returned for non-200 responses.
type statusError struct {
	code    int
	latency time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("sonarr returned %d (latency=%v)", e.code, e.latency)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	var decodeErr *json.SyntaxError
	return !errors.As(err, &decodeErr)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return retry.Do(
		func() error { return c.once(ctx, endpoint, out) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying sonarr request",
				logging.Int("attempt", int(n)+1),
				logging.String("url", endpoint),
				logging.Error(err),
			)
		}),
	)
}

func (c *Client) once(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode, latency: latency}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode sonarr response: %w", err)
	}
	return nil
}
