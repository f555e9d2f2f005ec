package config

const (
	defaultConfigPath                 = "~/.config/tssk/config.toml"
	defaultSonarrTimeoutSeconds       = 10
	defaultSonarrRetryAttempts        = 3
	defaultSonarrRetryDelayMS         = 500
	defaultSonarrConcurrency          = 4
	defaultTMDBBaseURL                = "https://api.themoviedb.org/3"
	defaultTMDBTimeoutSeconds         = 10
	defaultFutureDays                 = 14
	defaultRecentDaysSeasonFinale     = 14
	defaultRecentDaysFinalEpisode     = 14
	defaultRecentDaysNewSeasonStarted = 7
	defaultRecentlyAddedDays          = 7
	defaultOverlayDir                 = "~/.local/share/tssk/overlays"
	defaultCollectionDir              = "~/.local/share/tssk/collections"
	defaultTemplatesFile              = "~/.config/tssk/templates.yml"
	defaultStatusCachePath            = "~/.cache/tssk/status_cache.db"
	defaultStatusCacheTTLHours        = 168
	defaultUpdateRepository           = "netplexflix/TV-show-status-for-Kometa"
	defaultUpdateTimeoutSeconds       = 5
	defaultLogFormat                  = "console"
	defaultLogLevel                   = "info"
	defaultLogMaxSizeMB               = 10
	defaultLogMaxBackups              = 3
	defaultLogMaxAgeDays              = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sonarr: Sonarr{
			TimeoutSeconds: defaultSonarrTimeoutSeconds,
			RetryAttempts:  defaultSonarrRetryAttempts,
			RetryDelayMS:   defaultSonarrRetryDelayMS,
			Concurrency:    defaultSonarrConcurrency,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			TimeoutSeconds: defaultTMDBTimeoutSeconds,
		},
		Windows: Windows{
			FutureDays:                 defaultFutureDays,
			RecentDaysSeasonFinale:     defaultRecentDaysSeasonFinale,
			RecentDaysFinalEpisode:     defaultRecentDaysFinalEpisode,
			RecentDaysNewSeasonStarted: defaultRecentDaysNewSeasonStarted,
		},
		RecentlyAdded: RecentlyAdded{
			NewShow:            defaultRecentlyAddedDays,
			NewEpisodeAdded:    defaultRecentlyAddedDays,
			FreshEpisodeAdded:  defaultRecentlyAddedDays,
			NewSeasonAdded:     defaultRecentlyAddedDays,
			EpisodeOnSeason:    defaultRecentlyAddedDays,
			NewEpisodeOnSeason: defaultRecentlyAddedDays,
			SeasonAdded:        defaultRecentlyAddedDays,
			NewSeasonReleased:  defaultRecentlyAddedDays,
			EpisodeAdded:       defaultRecentlyAddedDays,
			NewEpisodeReleased: defaultRecentlyAddedDays,
		},
		Output: Output{
			OverlayDir:    defaultOverlayDir,
			CollectionDir: defaultCollectionDir,
			TemplatesFile: defaultTemplatesFile,
		},
		StatusCache: StatusCache{
			Enabled:  true,
			Path:     defaultStatusCachePath,
			TTLHours: defaultStatusCacheTTLHours,
		},
		UpdateCheck: UpdateCheck{
			Enabled:        true,
			Repository:     defaultUpdateRepository,
			TimeoutSeconds: defaultUpdateTimeoutSeconds,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
