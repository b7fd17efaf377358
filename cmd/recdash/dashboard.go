package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/config"
	"github.com/Veraticus/recdash/internal/tui"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive analytics dashboard.

All four analytics requests are issued when the dashboard opens. A spinner is
shown until every one of them has settled; requests that fail are logged and
their section stays empty. Press r to reload, ? for help and q to quit.`,
		RunE: runDashboard,
	}
	addDashboardFlags(cmd)
	return cmd
}

func addDashboardFlags(cmd *cobra.Command) {
	cmd.Flags().String("route", tui.PathDashboard, "page to open first (/, /login, /products, /recommendations, /analytics, /settings)")
	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	// Logs would corrupt the alternate screen, so they go to a file.
	logFile, err := openLogFile(settings.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	client, err := initClient(settings)
	if err != nil {
		return err
	}

	themeName := settings.Theme
	if flag, _ := cmd.Flags().GetString("theme"); flag != "" {
		themeName = flag
	}
	route, _ := cmd.Flags().GetString("route")

	opts := []tui.Option{
		tui.WithSource(client),
		tui.WithTheme(themes.GetTheme(themeName)),
		tui.WithRoute(route),
		tui.WithAPIURL(client.BaseURL()),
	}

	store, err := initJournal(ctx, settings)
	if err != nil {
		// The journal is diagnostics only; the dashboard works without it.
		common.LogError(err, "Load journal unavailable", common.Fields{"path": settings.JournalPath})
	} else if store != nil {
		defer closeJournal(store)
		opts = append(opts, tui.WithJournal(store))
	}

	common.LogInfo("Starting dashboard", common.Fields{
		"api_url": client.BaseURL(),
		"route":   route,
	})

	return tui.Run(ctx, opts...)
}

// openLogFile redirects the global logger to path for the lifetime of the TUI.
func openLogFile(path string) (*os.File, error) {
	if err := config.EnsureParentDir(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	if err := setupLogging(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}
