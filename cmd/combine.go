package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"covtree.dev/pkg/covtree/internal/domain"
)

const defaultCombineOutput = "combined.json"

var combineOutputFlag string

// combineCmd represents the combine command.
var combineCmd = newCombineCmd()

func newCombineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine TREE OTHER",
		Short: "Combine two module documents into one report",
		Long: `Merge two module tree documents. Same-named modules are reconciled node by
node; differently-named modules are grouped under one combined report.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Combine(context.Background(), domain.CombineArgs{
				Tree:   args[0],
				Other:  args[1],
				Output: combineOutputFlag,
				Locale: configuredLocale(),
			})
		},
	}

	cmd.Flags().StringVarP(&combineOutputFlag, outputFlagName, "o", defaultCombineOutput, "output path for the combined document")

	return cmd
}

func init() {
	rootCmd.AddCommand(combineCmd)
}
