package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tssk/internal/config"
	"tssk/internal/kometa"
	"tssk/internal/preflight"
	"tssk/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var templatesPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file and the default Kometa templates",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveInitPath(targetPath, config.DefaultConfigPath)
			if err != nil {
				return err
			}
			templates, err := resolveInitPath(templatesPath, func() (string, error) {
				return filepath.Join(filepath.Dir(target), "templates.yml"), nil
			})
			if err != nil {
				return err
			}

			if err := ensureWritable(target, overwrite); err != nil {
				return err
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)

			if err := ensureWritable(templates, overwrite); err != nil {
				fmt.Fprintf(out, "Kept existing templates at %s\n", templates)
			} else {
				if err := os.WriteFile(templates, kometa.DefaultTemplates(), 0o644); err != nil {
					return fmt.Errorf("write templates: %w", err)
				}
				fmt.Fprintf(out, "Wrote default Kometa templates to %s\n", templates)
			}
			fmt.Fprintln(out, "Set sonarr.api_key (or export SONARR_API_KEY) and point output.templates_file at the templates before running tssk.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().StringVar(&templatesPath, "templates", "", "Destination for the Kometa templates file (default: next to the config)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files if present")
	return cmd
}

func resolveInitPath(flag string, fallback func() (string, error)) (string, error) {
	target := strings.TrimSpace(flag)
	if target == "" {
		defaultPath, err := fallback()
		if err != nil {
			return "", fmt.Errorf("determine default path: %w", err)
		}
		return defaultPath, nil
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return expanded, nil
}

func ensureWritable(target string, overwrite bool) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	if overwrite {
		return nil
	}
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%s already exists (use --overwrite to replace it)", target)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("check path: %w", err)
	}
	return nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration, output directories and Sonarr access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			results := preflight.RunAll(cmd.Context(), cfg, !offline)
			printPreflight(out, results, colorize)

			if failed, ok := preflight.FirstFailure(results); ok {
				marker := services.ErrConfiguration
				if failed.Name == preflight.SonarrCheck {
					marker = services.ErrConnectivity
				}
				return services.Wrap(marker, "cli", "validate", failed.Name, errors.New(failed.Detail))
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the Sonarr reachability probe")
	return cmd
}
