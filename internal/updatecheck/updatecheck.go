package updatecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const defaultBaseURL = "https://api.github.com"

// Release describes the latest published release.
type Release struct {
	Version string
	URL     string
	Notes   string
	// Newer is set when Version is a later semantic version than the running build.
	Newer bool
}

type releasePayload struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
}

// Checker queries GitHub for the latest release of a repository.
type Checker struct {
	baseURL    string
	repository string
	current    string
	httpClient *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL points the checker at another GitHub API root.
func WithBaseURL(base string) Option {
	return func(c *Checker) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			c.baseURL = base
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Checker) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a checker for repository ("owner/name") running version current.
func New(repository, current string, opts ...Option) *Checker {
	c := &Checker{
		baseURL:    defaultBaseURL,
		repository: strings.Trim(strings.TrimSpace(repository), "/"),
		current:    current,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check fetches the latest release and compares it to the running version.
func (c *Checker) Check(ctx context.Context) (Release, error) {
	if c.repository == "" {
		return Release{}, fmt.Errorf("update check: repository not configured")
	}
	endpoint := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Release{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("github returned %d", resp.StatusCode)
	}

	var payload releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Release{}, fmt.Errorf("decode release: %w", err)
	}
	return Release{
		Version: strings.TrimPrefix(payload.TagName, "v"),
		URL:     payload.HTMLURL,
		Notes:   strings.TrimSpace(payload.Body),
		Newer:   Newer(c.current, payload.TagName),
	}, nil
}

// Newer reports whether latest is a higher semantic version than current.
// Development builds and unparsable tags never report an update.
func Newer(current, latest string) bool {
	cur, lat := canonical(current), canonical(latest)
	if !semver.IsValid(cur) || !semver.IsValid(lat) {
		return false
	}
	return semver.Compare(lat, cur) > 0
}

func canonical(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
