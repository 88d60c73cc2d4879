package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/reachlab/schedule"
)

func newSchedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List the built-in schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
			for _, name := range schedule.Names() {
				e, _ := schedule.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Dir, e.Description)
			}
			return tw.Flush()
		},
	}
}
