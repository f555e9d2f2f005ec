package kometa

import (
	"context"
	"log/slog"
	"path/filepath"

	"tssk/internal/catalog"
	"tssk/internal/config"
	"tssk/internal/logging"
	"tssk/internal/pipeline"
	"tssk/internal/services"
)

// Report lists the files a Publish call wrote.
type Report struct {
	Overlays    []string
	Collections []string
	Filters     []string
}

// Total returns the number of files written.
func (r Report) Total() int {
	return len(r.Overlays) + len(r.Collections) + len(r.Filters)
}

// Publisher turns a classification result into Kometa files.
type Publisher struct {
	templates     *Templates
	writer        *Writer
	dates         DateFormatter
	overlayDir    string
	collectionDir string
	recent        config.RecentlyAdded
	logger        *slog.Logger
}

// NewPublisher wires a publisher from configuration.
func NewPublisher(cfg *config.Config, templates *Templates, writer *Writer, dates DateFormatter, logger *slog.Logger) *Publisher {
	return &Publisher{
		templates:     templates,
		writer:        writer,
		dates:         dates,
		overlayDir:    cfg.Output.OverlayDir,
		collectionDir: cfg.Output.CollectionDir,
		recent:        cfg.RecentlyAdded,
		logger:        logging.NewComponentLogger(logger, "kometa"),
	}
}

// Publish writes the overlay and collection of every category followed by
// the Plex-filter overlays. It stops at the first failure.
func (p *Publisher) Publish(ctx context.Context, result *pipeline.Result, spans pipeline.Spans) (Report, error) {
	var report Report
	for _, category := range catalog.Categories() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		out := categoryOutputs[category]
		matches := result.For(category)

		overlay, err := RenderOverlay(category, matches,
			p.templates.Section(out.backdropKeys()...),
			p.templates.Section(out.textKeys()...),
			p.dates,
		)
		if err != nil {
			return report, services.Wrap(nil, "kometa", "render overlay", string(category), err)
		}
		path := filepath.Join(p.overlayDir, OverlayFileName(category))
		if err := p.write(path, overlay); err != nil {
			return report, err
		}
		report.Overlays = append(report.Overlays, path)

		collection, err := RenderCollection(
			p.templates.Section(out.collectionKeys...),
			matches,
			Summary(category, spans.Days(category)),
		)
		if err != nil {
			return report, services.Wrap(nil, "kometa", "render collection", string(category), err)
		}
		path = filepath.Join(p.collectionDir, CollectionFileName(category))
		if err := p.write(path, collection); err != nil {
			return report, err
		}
		report.Collections = append(report.Collections, path)

		p.logger.Debug("category files written",
			logging.String(logging.FieldCategory, string(category)),
			logging.Int("shows", len(matches)),
		)
	}

	for _, filter := range plexFilters {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		days := RecentDays(filter, p.recent)
		data, err := RenderPlexFilter(filter,
			p.templates.Section("backdrop_"+filter.Section),
			p.templates.Section("text_"+filter.Section),
			days,
		)
		if err != nil {
			return report, services.Wrap(nil, "kometa", "render plex filter", filter.Name, err)
		}
		path := filepath.Join(p.overlayDir, filter.FileName())
		if err := p.write(path, data); err != nil {
			return report, err
		}
		report.Filters = append(report.Filters, path)
	}

	p.logger.Info("kometa files written",
		logging.Int("files", report.Total()),
		logging.String("overlay_dir", p.overlayDir),
		logging.String("collection_dir", p.collectionDir),
	)
	return report, nil
}

func (p *Publisher) write(path string, data []byte) error {
	if err := p.writer.WriteFile(path, data); err != nil {
		return services.Wrap(services.ErrConfiguration, "kometa", "write", "check output directory permissions", err)
	}
	return nil
}

// RecentDays returns the configured day span for a Plex-filter overlay.
func RecentDays(f PlexFilter, recent config.RecentlyAdded) int {
	switch f.Section {
	case "new_episode_added":
		return recent.NewEpisodeAdded
	case "recent_new_episode_added":
		return recent.FreshEpisodeAdded
	case "new_season_added":
		return recent.NewSeasonAdded
	case "new_show":
		return recent.NewShow
	case "episode_season":
		return recent.EpisodeOnSeason
	case "new_episode_season":
		return recent.NewEpisodeOnSeason
	case "season_added":
		return recent.SeasonAdded
	case "new_season_released":
		return recent.NewSeasonReleased
	case "episode_added":
		return recent.EpisodeAdded
	case "new_episode_released":
		return recent.NewEpisodeReleased
	default:
		return 0
	}
}
