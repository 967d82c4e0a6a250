package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"covtree.dev/pkg/covtree/internal/domain"
)

var splitOutputFlag string

// splitCmd represents the split command.
var splitCmd = newSplitCmd()

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split TREE",
		Short: "Split flat packages into a package hierarchy",
		Long: `Restructure the flat, dot-named packages of a module document into a
nested package hierarchy. Without --output the input document is rewritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Split(context.Background(), domain.SplitArgs{
				Tree:   args[0],
				Output: splitOutputFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&splitOutputFlag, outputFlagName, "o", "", "output path (defaults to the input document)")

	return cmd
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
