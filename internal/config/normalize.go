package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSonarr()
	c.normalizeTMDB()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	if err := c.normalizeStatusCache(); err != nil {
		return err
	}
	if err := c.normalizeMetrics(); err != nil {
		return err
	}
	c.normalizeUpdateCheck()
	return c.normalizeLogging()
}

func (c *Config) normalizeSonarr() {
	if strings.TrimSpace(c.Sonarr.URL) == "" {
		if value, ok := os.LookupEnv("SONARR_URL"); ok {
			c.Sonarr.URL = value
		}
	}
	if c.Sonarr.APIKey == "" {
		if value, ok := os.LookupEnv("SONARR_API_KEY"); ok {
			c.Sonarr.APIKey = value
		}
	}
	c.Sonarr.URL = strings.TrimRight(strings.TrimSpace(c.Sonarr.URL), "/")
	c.Sonarr.APIKey = strings.TrimSpace(c.Sonarr.APIKey)
	if c.Sonarr.TimeoutSeconds <= 0 {
		c.Sonarr.TimeoutSeconds = defaultSonarrTimeoutSeconds
	}
	if c.Sonarr.RetryAttempts <= 0 {
		c.Sonarr.RetryAttempts = 1
	}
	if c.Sonarr.RetryDelayMS < 0 {
		c.Sonarr.RetryDelayMS = 0
	}
	if c.Sonarr.Concurrency <= 0 {
		c.Sonarr.Concurrency = defaultSonarrConcurrency
	}
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		c.TMDB.TimeoutSeconds = defaultTMDBTimeoutSeconds
	}
}

func (c *Config) normalizeOutput() error {
	var err error
	if c.Output.OverlayDir, err = expandPath(c.Output.OverlayDir); err != nil {
		return fmt.Errorf("output.overlay_dir: %w", err)
	}
	if c.Output.CollectionDir, err = expandPath(c.Output.CollectionDir); err != nil {
		return fmt.Errorf("output.collection_dir: %w", err)
	}
	if c.Output.TemplatesFile, err = expandPath(c.Output.TemplatesFile); err != nil {
		return fmt.Errorf("output.templates_file: %w", err)
	}

	// Container deployments pass ownership through the environment.
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DOCKER")), "true") {
		c.Output.FixOwnership = true
		c.Output.PUID = envInt("PUID", 1000)
		c.Output.PGID = envInt("PGID", 1000)
	}
	return nil
}

func (c *Config) normalizeStatusCache() error {
	if strings.TrimSpace(c.StatusCache.Path) == "" {
		c.StatusCache.Path = defaultStatusCachePath
	}
	var err error
	if c.StatusCache.Path, err = expandPath(c.StatusCache.Path); err != nil {
		return fmt.Errorf("status_cache.path: %w", err)
	}
	if c.StatusCache.TTLHours <= 0 {
		c.StatusCache.TTLHours = defaultStatusCacheTTLHours
	}
	return nil
}

func (c *Config) normalizeMetrics() error {
	var err error
	if c.Metrics.Textfile, err = expandPath(strings.TrimSpace(c.Metrics.Textfile)); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}

func (c *Config) normalizeUpdateCheck() {
	c.UpdateCheck.Repository = strings.Trim(strings.TrimSpace(c.UpdateCheck.Repository), "/")
	if c.UpdateCheck.Repository == "" {
		c.UpdateCheck.Repository = defaultUpdateRepository
	}
	if c.UpdateCheck.TimeoutSeconds <= 0 {
		c.UpdateCheck.TimeoutSeconds = defaultUpdateTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
	return nil
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
