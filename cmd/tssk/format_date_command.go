package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tssk/internal/dateformat"
	"tssk/internal/services"
)

func newFormatDateCommand() *cobra.Command {
	var capitalize bool

	cmd := &cobra.Command{
		Use:         "format-date <dd/mm/yyyy> <pattern>",
		Short:       "Render a date with an overlay date_format pattern",
		Example:     "  tssk format-date 10/03/2025 \"ddd dd/mm\" --capitalize",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rendered, err := dateformat.Render(args[0], args[1], capitalize)
			if err != nil {
				return services.Wrap(services.ErrValidation, "cli", "format date", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&capitalize, "capitalize", false, "Upper-case the rendered date")
	return cmd
}
