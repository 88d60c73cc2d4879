package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/reachlab/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <experimental_data.csv>...",
		Short: "Summarize recorded error angles by parameter block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, path := range args {
				rep, err := analysis.Load(path)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := analysis.Write(out, rep); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
