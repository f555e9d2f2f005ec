package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tssk/internal/catalog"
	"tssk/internal/kometa"
	"tssk/internal/pipeline"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories, their day spans and the files they produce",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			spans := pipeline.SettingsFromConfig(cfg, time.Now()).Spans

			rows := make([][]string, 0, len(catalog.Categories()))
			for _, category := range catalog.Categories() {
				days := "-"
				if d := spans.Days(category); d > 0 {
					days = strconv.Itoa(d)
				}
				rows = append(rows, []string{
					string(category),
					categoryTitle(category),
					yesNo(category.Exclusive()),
					days,
					kometa.OverlayFileName(category),
					kometa.CollectionFileName(category),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Category", "Title", "Exclusive", "Days", "Overlay", "Collection"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))

			filterRows := make([][]string, 0, len(kometa.PlexFilters()))
			for _, f := range kometa.PlexFilters() {
				filterRows = append(filterRows, []string{
					f.FileName(),
					f.BuilderLevel,
					strconv.Itoa(kometa.RecentDays(f, cfg.RecentlyAdded)),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Plex filter overlay", "Level", "Days"},
				filterRows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
