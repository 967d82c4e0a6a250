// Package cmd provides the root command and CLI setup for covtree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"covtree.dev/pkg/covtree/internal/adapter"
	"covtree.dev/pkg/covtree/internal/controller"
	"covtree.dev/pkg/covtree/internal/domain"
)

var treeStore adapter.TreeStore
var ui controller.UI
var workflow domain.Workflow

// localeFlag selects the locale used to format percentages.
var localeFlag string

// logFileFlag overrides the log file location.
var logFileFlag string

// verboseFlag switches logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	treeStore = adapter.NewFileTreeStore()
	workflow = domain.NewWorkflow(treeStore, ui)
}

const rootLongDescription = `Covtree models hierarchical code-coverage results as a tree. It aggregates
covered/missed counters per metric, compares two reports, restructures flat
package names into a nested hierarchy, and combines independently generated
reports into one.

Tree documents are JSON (or YAML, by extension) serializations of the tree,
as produced by external report builders.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "covtree",
		Short: "Coverage tree aggregation and comparison tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(
		&localeFlag, localeFlagName, "l",
		viper.GetString(localeConfigKey),
		"locale used to format percentages (e.g. en, de)",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(localeFlagName), localeConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
