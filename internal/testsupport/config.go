package testsupport

import (
	"path/filepath"
	"testing"

	"tssk/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Sonarr.URL = "http://127.0.0.1:8989"
	cfgVal.Sonarr.APIKey = "test"
	cfgVal.Sonarr.RetryAttempts = 1
	cfgVal.Sonarr.RetryDelayMS = 0
	cfgVal.Output.OverlayDir = filepath.Join(base, "overlays")
	cfgVal.Output.CollectionDir = filepath.Join(base, "collections")
	cfgVal.Output.TemplatesFile = filepath.Join(base, "templates.yml")
	cfgVal.StatusCache.Path = filepath.Join(base, "cache", "status.db")
	cfgVal.UpdateCheck.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSonarr points the test config at a (usually httptest) Sonarr server.
func WithSonarr(url, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sonarr.URL = url
		b.cfg.Sonarr.APIKey = apiKey
	}
}

// WithTMDB sets the TMDB base URL and key on the test config.
func WithTMDB(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = baseURL
		b.cfg.TMDB.APIKey = key
	}
}

// WithMetricsTextfile enables the metrics export inside the temp dir.
func WithMetricsTextfile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metrics.Textfile = filepath.Join(b.baseDir, "metrics", "tssk.prom")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Output.OverlayDir)
}
