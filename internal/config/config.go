package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sonarr contains connection settings for the Sonarr v3 API.
type Sonarr struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryAttempts  int    `toml:"retry_attempts"`
	RetryDelayMS   int    `toml:"retry_delay_ms"`
	Concurrency    int    `toml:"concurrency"`
}

// TMDB contains configuration for The Movie Database status lookup.
type TMDB struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Windows controls the classification time windows.
//
// The per-category forward spans are optional; when unset they inherit
// FutureDays.
type Windows struct {
	UTCOffset                  float64 `toml:"utc_offset"`
	SkipUnmonitored            bool    `toml:"skip_unmonitored"`
	FutureDays                 int     `toml:"future_days"`
	FutureDaysNewSeason        *int    `toml:"future_days_new_season"`
	FutureDaysUpcomingEpisode  *int    `toml:"future_days_upcoming_episode"`
	FutureDaysUpcomingFinale   *int    `toml:"future_days_upcoming_finale"`
	RecentDaysSeasonFinale     int     `toml:"recent_days_season_finale"`
	RecentDaysFinalEpisode     int     `toml:"recent_days_final_episode"`
	RecentDaysNewSeasonStarted int     `toml:"recent_days_new_season_started"`
}

// RecentlyAdded holds the day spans used by the Plex-filter overlays.
type RecentlyAdded struct {
	NewShow            int `toml:"new_show"`
	NewEpisodeAdded    int `toml:"new_episode_added"`
	FreshEpisodeAdded  int `toml:"fresh_episode_added"`
	NewSeasonAdded     int `toml:"new_season_added"`
	EpisodeOnSeason    int `toml:"episode_on_season"`
	NewEpisodeOnSeason int `toml:"new_episode_on_season"`
	SeasonAdded        int `toml:"season_added"`
	NewSeasonReleased  int `toml:"new_season_released"`
	EpisodeAdded       int `toml:"episode_added"`
	NewEpisodeReleased int `toml:"new_episode_released"`
}

// Output describes where Kometa files are written and who owns them.
type Output struct {
	OverlayDir    string `toml:"overlay_dir"`
	CollectionDir string `toml:"collection_dir"`
	TemplatesFile string `toml:"templates_file"`
	FixOwnership  bool   `toml:"fix_ownership"`
	PUID          int    `toml:"puid"`
	PGID          int    `toml:"pgid"`
}

// StatusCache configures the SQLite cache in front of the TMDB lookup.
type StatusCache struct {
	Enabled  bool   `toml:"enabled"`
	Path     string `toml:"path"`
	TTLHours int    `toml:"ttl_hours"`
}

// Metrics configures the Prometheus textfile export.
type Metrics struct {
	Textfile string `toml:"textfile"`
}

// UpdateCheck configures the release check performed at the start of a run.
type UpdateCheck struct {
	Enabled        bool   `toml:"enabled"`
	Repository     string `toml:"repository"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Config encapsulates all configuration values for tssk.
//
// Configuration sections by subsystem:
//   - Sonarr: backend connection, retries and fetch concurrency
//   - TMDB: ended/cancelled disambiguation
//   - Windows: time offset, unmonitored policy and category day spans
//   - RecentlyAdded: day spans for the Plex-filter overlays
//   - Output: Kometa overlay/collection directories and ownership
//   - StatusCache: cached TMDB status lookups
//   - Metrics: Prometheus textfile export
//   - UpdateCheck: latest release check
//   - Logging: log format, level and rotating file
type Config struct {
	Sonarr        Sonarr        `toml:"sonarr"`
	TMDB          TMDB          `toml:"tmdb"`
	Windows       Windows       `toml:"windows"`
	RecentlyAdded RecentlyAdded `toml:"recently_added"`
	Output        Output        `toml:"output"`
	StatusCache   StatusCache   `toml:"status_cache"`
	Metrics       Metrics       `toml:"metrics"`
	UpdateCheck   UpdateCheck   `toml:"update_check"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and environment fallbacks applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tssk.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output directories and the status cache
// directory before anything is written.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Output.OverlayDir, c.Output.CollectionDir}
	if c.StatusCache.Enabled && strings.TrimSpace(c.StatusCache.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.StatusCache.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ForwardDays returns the effective spans for the three forward-looking
// categories: new season, upcoming episode and upcoming finale.
func (c *Config) ForwardDays() (newSeason, upcomingEpisode, upcomingFinale int) {
	pick := func(v *int) int {
		if v == nil {
			return c.Windows.FutureDays
		}
		return *v
	}
	return pick(c.Windows.FutureDaysNewSeason), pick(c.Windows.FutureDaysUpcomingEpisode), pick(c.Windows.FutureDaysUpcomingFinale)
}

// OwnershipEnabled reports whether written files should be chowned.
func (c *Config) OwnershipEnabled() bool {
	return c.Output.FixOwnership && c.Output.PUID >= 0 && c.Output.PGID >= 0
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}
