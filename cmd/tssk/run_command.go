package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"tssk/internal/catalog"
	"tssk/internal/kometa"
	"tssk/internal/preflight"
)

var categoryTitles = map[catalog.Category]string{
	catalog.CategorySeasonFinale:     "Season finales aired",
	catalog.CategoryFinalEpisode:     "Final episodes aired",
	catalog.CategoryNewSeason:        "New seasons airing soon",
	catalog.CategoryNewSeasonStarted: "New seasons started",
	catalog.CategoryUpcomingEpisode:  "Upcoming episodes",
	catalog.CategoryUpcomingFinale:   "Upcoming finales",
	catalog.CategoryEnded:            "Ended",
	catalog.CategoryCancelled:        "Cancelled",
	catalog.CategoryReturning:        "Returning",
}

func categoryTitle(category catalog.Category) string {
	if title, ok := categoryTitles[category]; ok {
		return title
	}
	return string(category)
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify the Sonarr library and write Kometa overlays and collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.skipUpdateCheck, "skip-update-check", false, "Do not query GitHub for a newer release")
	return cmd
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	summary, err := executeRun(cmd.Context(), cfg, logger, opts)
	if err != nil {
		if _, failed := preflight.FirstFailure(summary.preflight); failed {
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			printPreflight(out, summary.preflight, colorize)
		}
		return err
	}
	printRunSummary(out, summary, colorize)
	return nil
}

func printRunSummary(out io.Writer, s *runSummary, colorize bool) {
	for _, category := range catalog.Categories() {
		matches := s.result.For(category)
		title := fmt.Sprintf("%s (%d)", categoryTitle(category), len(matches))
		for _, line := range renderSectionHeader(title, colorize) {
			fmt.Fprintln(out, line)
		}
		if len(matches) == 0 {
			fmt.Fprintln(out, statusIndent+"none")
		} else {
			fmt.Fprintln(out, renderMatchTable(matches))
		}
		fmt.Fprintln(out)
	}

	var skipped [][]string
	for _, category := range catalog.Categories() {
		for _, m := range s.result.SkippedFor(category) {
			skipped = append(skipped, []string{categoryTitle(category), m.Title, m.Position(), m.AirDate})
		}
	}
	if len(skipped) > 0 {
		for _, line := range renderSectionHeader(fmt.Sprintf("Skipped, not monitored (%d)", len(skipped)), colorize) {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Category", "Series", "Episode", "Air date"},
			skipped,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
		))
		fmt.Fprintln(out)
	}

	for _, line := range renderSectionHeader("Run", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Run id", statusInfo, s.runID, colorize))
	fmt.Fprintln(out, renderStatusLine("Series", statusInfo, fmt.Sprintf("%d", s.result.SeriesTotal), colorize))
	fmt.Fprintln(out, renderStatusLine("Templates", statusInfo, s.templates, colorize))
	fmt.Fprintln(out, renderStatusLine("Files written", statusOK, describeReport(s.report), colorize))
	if s.cacheHits+s.cacheMisses > 0 {
		fmt.Fprintln(out, renderStatusLine("Status cache", statusInfo,
			fmt.Sprintf("%d hits, %d misses", s.cacheHits, s.cacheMisses), colorize))
	}
	if s.update != nil {
		fmt.Fprintln(out, renderStatusLine("Update", statusWarn,
			fmt.Sprintf("%s available (running %s) %s", s.update.Version, version, s.update.URL), colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Elapsed", statusInfo, s.elapsed().Round(time.Millisecond).String(), colorize))
}

func describeReport(r kometa.Report) string {
	return fmt.Sprintf("%d (%d overlays, %d collections, %d filters)", r.Total(), len(r.Overlays), len(r.Collections), len(r.Filters))
}
