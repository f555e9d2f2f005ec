package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"tssk/internal/catalog"
	"tssk/internal/classify"
	"tssk/internal/config"
	"tssk/internal/dateformat"
	"tssk/internal/kometa"
	"tssk/internal/logging"
	"tssk/internal/metrics"
	"tssk/internal/pipeline"
	"tssk/internal/preflight"
	"tssk/internal/services"
	"tssk/internal/sonarr"
	"tssk/internal/statuscache"
	"tssk/internal/tmdb"
	"tssk/internal/updatecheck"
)

const lockFileName = ".tssk.lock"

type runOptions struct {
	skipUpdateCheck bool
	now             func() time.Time
	fs              afero.Fs
	updateBaseURL   string
}

// runSummary is everything the run command prints after a successful run.
type runSummary struct {
	runID       string
	preflight   []preflight.Result
	snapshot    *catalog.Snapshot
	result      *pipeline.Result
	report      kometa.Report
	templates   string
	update      *updatecheck.Release
	cacheHits   int64
	cacheMisses int64
	started     time.Time
	finished    time.Time
}

func (s *runSummary) elapsed() time.Duration {
	return s.finished.Sub(s.started)
}

// executeRun performs one full classification run. Any error returned before
// publishing means no Kometa file was touched.
func executeRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts runOptions) (*runSummary, error) {
	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.fs == nil {
		opts.fs = afero.NewOsFs()
	}
	summary := &runSummary{started: opts.now()}

	summary.preflight = preflight.RunAll(ctx, cfg, true)
	if failed, ok := preflight.FirstFailure(summary.preflight); ok {
		marker := services.ErrConfiguration
		if failed.Name == preflight.SonarrCheck {
			marker = services.ErrConnectivity
		}
		return summary, services.Wrap(marker, "run", "preflight", failed.Name, errors.New(failed.Detail))
	}

	lock := flock.New(filepath.Join(cfg.Output.OverlayDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "run", "acquire lock", lock.Path(), err)
	}
	if !locked {
		return summary, services.Wrap(services.ErrValidation, "run", "acquire lock", "another tssk run holds "+lock.Path(), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	summary.runID = uuid.NewString()
	ctx = services.WithRequestID(ctx, summary.runID)
	logger = logging.WithContext(ctx, logger)
	logger.Info("run started", logging.String("overlay_dir", cfg.Output.OverlayDir))

	if cfg.UpdateCheck.Enabled && !opts.skipUpdateCheck {
		summary.update = checkForUpdate(ctx, cfg, logger, opts.updateBaseURL)
	}

	snap, err := fetchSnapshot(ctx, cfg, logger)
	if err != nil {
		return summary, err
	}
	summary.snapshot = snap

	lookup, cached, closeLookup := buildStatusLookup(ctx, cfg, logger)
	defer closeLookup()

	settings := pipeline.SettingsFromConfig(cfg, opts.now())
	summary.result = pipeline.NewOrchestrator(lookup, logger).Classify(ctx, snap, settings)
	if cached != nil {
		summary.cacheHits, summary.cacheMisses = cached.Stats()
	}

	templates, err := kometa.LoadTemplates(opts.fs, cfg.Output.TemplatesFile)
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "run", "load templates", cfg.Output.TemplatesFile, err)
	}
	summary.templates = templates.Source()

	var writerOpts []kometa.WriterOption
	if cfg.OwnershipEnabled() {
		writerOpts = append(writerOpts, kometa.WithOwnership(cfg.Output.PUID, cfg.Output.PGID))
	}
	publisher := kometa.NewPublisher(cfg, templates, kometa.NewWriter(opts.fs, writerOpts...), dateformat.NewTranslator(logger), logger)
	summary.report, err = publisher.Publish(ctx, summary.result, settings.Spans)
	if err != nil {
		return summary, err
	}

	summary.finished = opts.now()
	exportMetrics(cfg, summary, logger)
	logger.Info("run complete",
		logging.Int("files", summary.report.Total()),
		logging.Duration("elapsed", summary.elapsed()),
	)
	return summary, nil
}

func fetchSnapshot(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Snapshot, error) {
	client, err := sonarr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey,
		sonarr.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Sonarr.TimeoutSeconds) * time.Second}),
		sonarr.WithRetry(cfg.Sonarr.RetryAttempts, time.Duration(cfg.Sonarr.RetryDelayMS)*time.Millisecond),
		sonarr.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if _, err := client.Discover(ctx); err != nil {
		return nil, err
	}
	return pipeline.Fetch(ctx, client, cfg.Sonarr.Concurrency, logger)
}

// buildStatusLookup returns nil when no TMDB key is configured, in which case
// every ended series is reported as ended. A cache that cannot be opened is
// skipped rather than failing the run.
func buildStatusLookup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (classify.StatusLookup, *statuscache.CachedLookup, func()) {
	noop := func() {}
	if cfg.TMDB.APIKey == "" {
		return nil, nil, noop
	}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL,
		tmdb.WithTimeout(time.Duration(cfg.TMDB.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		logging.WarnWithContext(logger, "tmdb lookup disabled", "tmdb_init_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "cancelled series are reported as ended"),
			logging.String(logging.FieldErrorHint, "check [tmdb] api_key and base_url"),
		)
		return nil, nil, noop
	}
	if !cfg.StatusCache.Enabled {
		return client, nil, noop
	}

	cache, err := statuscache.Open(cfg.StatusCache.Path, time.Duration(cfg.StatusCache.TTLHours)*time.Hour)
	if err != nil {
		logging.WarnWithContext(logger, "status cache unavailable", "status_cache_open_failed",
			logging.Error(err),
			logging.String("path", cfg.StatusCache.Path),
			logging.String(logging.FieldImpact, "every ended series queries TMDB"),
			logging.String(logging.FieldErrorHint, "check [status_cache] path permissions"),
		)
		return client, nil, noop
	}
	if pruned, err := cache.Prune(ctx); err != nil {
		logging.WarnWithContext(logger, "status cache prune failed", "status_cache_prune_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "expired rows stay on disk"),
			logging.String(logging.FieldErrorHint, "delete the cache file to rebuild it"),
		)
	} else if pruned > 0 {
		logger.Debug("status cache pruned", logging.Int64("rows", pruned))
	}
	cached := cache.Wrap(client, logger)
	return cached, cached, func() {
		_ = cache.Close()
	}
}

func checkForUpdate(ctx context.Context, cfg *config.Config, logger *slog.Logger, baseURL string) *updatecheck.Release {
	opts := []updatecheck.Option{
		updatecheck.WithTimeout(time.Duration(cfg.UpdateCheck.TimeoutSeconds) * time.Second),
	}
	if baseURL != "" {
		opts = append(opts, updatecheck.WithBaseURL(baseURL))
	}
	release, err := updatecheck.New(cfg.UpdateCheck.Repository, version, opts...).Check(ctx)
	if err != nil {
		logging.WarnWithContext(logger, "update check failed", "update_check_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "new releases are not announced"),
			logging.String(logging.FieldErrorHint, "set [update_check] enabled = false to silence"),
		)
		return nil
	}
	if !release.Newer {
		return nil
	}
	logger.Info("newer release available",
		logging.String("current", version),
		logging.String("latest", release.Version),
		logging.String("url", release.URL),
	)
	return &release
}

func exportMetrics(cfg *config.Config, summary *runSummary, logger *slog.Logger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	m := metrics.New()
	m.ObserveSnapshot(summary.snapshot)
	m.ObserveResult(summary.result)
	m.ObserveStatusCache(summary.cacheHits, summary.cacheMisses)
	m.ObserveRun(summary.started, summary.finished)
	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logging.WarnWithContext(logger, "metrics export failed", "metrics_write_failed",
			logging.Error(err),
			logging.String("path", cfg.Metrics.Textfile),
			logging.String(logging.FieldImpact, "node exporter keeps the previous values"),
			logging.String(logging.FieldErrorHint, "check [metrics] textfile directory permissions"),
		)
	}
}
