package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/recdash/internal/dashboard"
	"github.com/Veraticus/recdash/internal/tui"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Snapshot output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func snapshotCmd() *cobra.Command {
	var (
		format string
		width  int
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Load the dashboard once and print it",
		Long: `Load all four analytics endpoints once and print the result.

The text format renders the same cards, charts and table as the interactive
dashboard. The json and yaml formats print the raw dashboard state. Failed
requests are logged and leave their section empty; the command still exits 0.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, err := initClient(settings)
			if err != nil {
				return err
			}

			opts := []dashboard.LoaderOption{dashboard.WithName("snapshot")}

			store, err := initJournal(cmd.Context(), settings)
			if err != nil {
				slog.Warn("Load journal unavailable", "error", err)
			} else if store != nil {
				defer closeJournal(store)
				opts = append(opts, dashboard.WithJournal(store))
			}

			if !quiet {
				bar := newSettleBar(os.Stderr)
				opts = append(opts, dashboard.WithSettledHook(func(dashboard.Result) {
					if err := bar.Add(1); err != nil {
						slog.Warn("Failed to update progress bar", "error", err)
					}
				}))
			}

			state := dashboard.NewLoader(client, opts...).Load(cmd.Context())

			return writeSnapshot(cmd.OutOrStdout(), state, format, themes.GetTheme(settings.Theme), width)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, yaml)")
	cmd.Flags().IntVarP(&width, "width", "w", 120, "render width for text output")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

func newSettleBar(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(4,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan]Loading dashboard...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// writeSnapshot prints the settled state in the requested format.
func writeSnapshot(w io.Writer, state dashboard.State, format string, theme themes.Theme, width int) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return nil

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return enc.Close()

	default:
		_, err := fmt.Fprintln(w, tui.RenderDashboard(theme, state, width))
		return err
	}
}
