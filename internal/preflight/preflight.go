package preflight

import (
	"context"
	"path/filepath"

	"tssk/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks that apply to cfg. Sonarr is only probed when
// probeSonarr is set, so offline commands can still validate paths.
func RunAll(ctx context.Context, cfg *config.Config, probeSonarr bool) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Overlay directory", cfg.Output.OverlayDir),
		CheckDirectoryAccess("Collection directory", cfg.Output.CollectionDir),
	}
	if cfg.StatusCache.Enabled && cfg.StatusCache.Path != "" {
		results = append(results, CheckDirectoryAccess("Status cache directory", filepath.Dir(cfg.StatusCache.Path)))
	}
	if probeSonarr {
		results = append(results, CheckSonarr(ctx, cfg.Sonarr.URL, cfg.Sonarr.APIKey))
	}
	results = append(results, CheckTMDB(cfg.TMDB.APIKey))
	return results
}

// FirstFailure returns the first failed result, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}
