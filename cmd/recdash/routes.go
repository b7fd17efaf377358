package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/recdash/internal/cli"
	"github.com/Veraticus/recdash/internal/tui"
	"github.com/spf13/cobra"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the dashboard pages",
		Long:  `List every page of the dashboard, the key that opens it and whether it renders inside the main layout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Path"),
				cli.HeaderStyle.Render("Page"),
				cli.HeaderStyle.Render("Key"),
				cli.HeaderStyle.Render("Layout"))

			tab := 0
			for _, r := range tui.Routes {
				keyName := "-"
				layout := cli.SubtleStyle.Render("no")
				if r.Layout {
					tab++
					keyName = fmt.Sprintf("%d", tab)
					layout = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Path, r.Title, keyName, layout)
			}

			return w.Flush()
		},
	}
}
