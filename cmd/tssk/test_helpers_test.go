package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tssk/internal/config"
	"tssk/internal/testsupport"
)

type fakeSonarr struct {
	series   []map[string]any
	episodes map[int64][]map[string]any
}

func (f *fakeSonarr) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var payload any
		switch r.URL.Path {
		case "/api/v3/health":
			payload = []any{}
		case "/api/v3/series":
			payload = f.series
		case "/api/v3/episode":
			var id int64
			if _, err := fmt.Sscan(r.URL.Query().Get("seriesId"), &id); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			payload = f.episodes[id]
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode %s: %v", r.URL.Path, err)
		}
	})
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, sonarrURL string) *cliTestEnv {
	t.Helper()

	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("DOCKER", "")
	cfg := testsupport.NewConfig(t,
		testsupport.WithSonarr(sonarrURL, "test-key"),
		testsupport.WithMetricsTextfile(),
	)
	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[sonarr]
url = %q
api_key = %q
retry_attempts = 1
retry_delay_ms = 0

[output]
overlay_dir = %q
collection_dir = %q
templates_file = %q

[status_cache]
enabled = false
path = %q

[metrics]
textfile = %q

[update_check]
enabled = false

[logging]
level = "error"
`,
		cfg.Sonarr.URL,
		cfg.Sonarr.APIKey,
		cfg.Output.OverlayDir,
		cfg.Output.CollectionDir,
		cfg.Output.TemplatesFile,
		cfg.StatusCache.Path,
		cfg.Metrics.Textfile,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
