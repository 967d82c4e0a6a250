package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"covtree.dev/pkg/covtree/internal/domain"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show TREE",
		Short: "Show the coverage distribution of a tree document",
		Long:  "Show the aggregated counters and percentages for every metric of a tree document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Show(context.Background(), domain.ShowArgs{
				Tree:   args[0],
				Locale: configuredLocale(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
