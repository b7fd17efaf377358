package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/recdash/internal/cli"
	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/model"
	"github.com/Veraticus/recdash/internal/storage"
	"github.com/spf13/cobra"
)

func loadsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "loads",
		Short: "List recent dashboard load cycles",
		Long: `List the most recent dashboard load cycles recorded in the load journal.

Each cycle is one dashboard mount: four requests fired and settled. The
journal is for diagnostics only and is never used to fill the dashboard.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openJournalForCommand(cmd)
			if err != nil {
				return err
			}
			defer closeJournal(store)

			cycles, err := store.ListCycles(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list load cycles: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(cycles) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No load cycles recorded yet."))
				return nil
			}
			return writeCycleTable(out, cycles)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", storage.DefaultListLimit, "number of cycles to show")

	cmd.AddCommand(loadsShowCmd())
	cmd.AddCommand(loadsPruneCmd())

	return cmd
}

func loadsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <cycle-id>",
		Short: "Show the per-endpoint outcomes of one load cycle",
		Long: `Show the per-endpoint outcomes of one load cycle.

The id may be the full cycle id or any unique prefix of it, such as the
short id printed by "recdash loads".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournalForCommand(cmd)
			if err != nil {
				return err
			}
			defer closeJournal(store)

			cycle, err := store.GetCycle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeCycleDetail(cmd.OutOrStdout(), *cycle)
		},
	}
}

func loadsPruneCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete load cycles older than a given age",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			store, err := openJournalForCommand(cmd)
			if err != nil {
				return err
			}
			defer closeJournal(store)

			removed, err := store.PruneBefore(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return fmt.Errorf("failed to prune load cycles: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %d load cycle(s)", removed)))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "remove cycles that started before this age")
	return cmd
}

// openJournalForCommand opens the journal, failing when it is disabled.
func openJournalForCommand(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if !settings.JournalEnabled {
		return nil, common.NewUserError("the load journal is disabled (journal.enabled=false)", common.ErrMissingConfig)
	}
	return initJournal(cmd.Context(), settings)
}

func writeCycleTable(out io.Writer, cycles []model.LoadCycle) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Started"),
		cli.HeaderStyle.Render("Source"),
		cli.HeaderStyle.Render("Elapsed"),
		cli.HeaderStyle.Render("Failed"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 8),
		strings.Repeat("─", 19),
		strings.Repeat("─", 8),
		strings.Repeat("─", 8),
		strings.Repeat("─", 6))

	for _, c := range cycles {
		failed := cli.SuccessStyle.Render("0")
		if n := c.Failures(); n > 0 {
			failed = cli.ErrorStyle.Render(fmt.Sprintf("%d/%d", n, len(c.Outcomes)))
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(c.ID),
			c.StartedAt.Local().Format("2006-01-02 15:04:05"),
			c.Source,
			c.Elapsed().Round(time.Millisecond),
			failed)
	}

	return w.Flush()
}

func writeCycleDetail(out io.Writer, c model.LoadCycle) error {
	fmt.Fprintln(out, cli.FormatTitle("Load cycle "+c.ID))
	fmt.Fprintf(out, "Source:   %s\n", c.Source)
	fmt.Fprintf(out, "Started:  %s\n", c.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Finished: %s\n\n", c.FinishedAt.Local().Format(time.RFC3339))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Endpoint"),
		cli.HeaderStyle.Render("Duration"),
		cli.HeaderStyle.Render("Result"))

	for _, o := range c.Outcomes {
		result := cli.FormatSuccess("ok")
		if !o.OK {
			result = cli.FormatError(o.Error)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", o.Endpoint, o.Duration.Round(time.Millisecond), result)
	}

	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
