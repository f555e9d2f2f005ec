package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSonarr(); err != nil {
		return err
	}
	if err := c.validateWindows(); err != nil {
		return err
	}
	if err := c.validateRecentlyAdded(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSonarr() error {
	if c.Sonarr.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("sonarr.url is required. Set SONARR_URL env var or edit %s (create with 'tssk config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Sonarr.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("sonarr.url %q must be an absolute http(s) URL", c.Sonarr.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("sonarr.url scheme %q is not supported", parsed.Scheme)
	}
	if c.Sonarr.APIKey == "" {
		return errors.New("sonarr.api_key is required. Set SONARR_API_KEY env var or edit the config file")
	}
	return nil
}

func (c *Config) validateWindows() error {
	if math.IsNaN(c.Windows.UTCOffset) || c.Windows.UTCOffset < -14 || c.Windows.UTCOffset > 14 {
		return errors.New("windows.utc_offset must be between -14 and 14 hours")
	}
	newSeason, upcomingEpisode, upcomingFinale := c.ForwardDays()
	spans := []struct {
		name  string
		value int
	}{
		{"windows.future_days", c.Windows.FutureDays},
		{"windows.future_days_new_season", newSeason},
		{"windows.future_days_upcoming_episode", upcomingEpisode},
		{"windows.future_days_upcoming_finale", upcomingFinale},
		{"windows.recent_days_season_finale", c.Windows.RecentDaysSeasonFinale},
		{"windows.recent_days_final_episode", c.Windows.RecentDaysFinalEpisode},
		{"windows.recent_days_new_season_started", c.Windows.RecentDaysNewSeasonStarted},
	}
	for _, span := range spans {
		if span.value < 0 {
			return fmt.Errorf("%s must be zero or positive", span.name)
		}
	}
	return nil
}

func (c *Config) validateRecentlyAdded() error {
	r := c.RecentlyAdded
	for name, value := range map[string]int{
		"new_show":              r.NewShow,
		"new_episode_added":     r.NewEpisodeAdded,
		"fresh_episode_added":   r.FreshEpisodeAdded,
		"new_season_added":      r.NewSeasonAdded,
		"episode_on_season":     r.EpisodeOnSeason,
		"new_episode_on_season": r.NewEpisodeOnSeason,
		"season_added":          r.SeasonAdded,
		"new_season_released":   r.NewSeasonReleased,
		"episode_added":         r.EpisodeAdded,
		"new_episode_released":  r.NewEpisodeReleased,
	} {
		if value < 0 {
			return fmt.Errorf("recently_added.%s must be zero or positive", name)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.TrimSpace(c.Output.OverlayDir) == "" {
		return errors.New("output.overlay_dir must be set")
	}
	if strings.TrimSpace(c.Output.CollectionDir) == "" {
		return errors.New("output.collection_dir must be set")
	}
	if c.Output.FixOwnership && (c.Output.PUID < 0 || c.Output.PGID < 0) {
		return errors.New("output.puid and output.pgid must be non-negative when fix_ownership is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}
