package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"covtree.dev/pkg/covtree/internal/domain"
)

// deltaCmd represents the delta command.
var deltaCmd = newDeltaCmd()

func newDeltaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delta TREE REFERENCE",
		Short: "Compare a tree document against a reference",
		Long:  "Compute the percentage-point coverage delta of a tree document against a reference document, per metric.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Delta(context.Background(), domain.DeltaArgs{
				Tree:      args[0],
				Reference: args[1],
				Locale:    configuredLocale(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(deltaCmd)
}
