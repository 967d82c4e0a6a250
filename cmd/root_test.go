package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// testRootCmd builds a fresh root command with the persistent flags bound,
// so tests do not execute against the global command tree.
func testRootCmd() *cobra.Command {
	cmd := newRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func TestRootCmd_ShowsHelpWithoutArguments(t *testing.T) {
	var out bytes.Buffer

	cmd := testRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "covtree")
}

func TestRootCmd_RegistersPersistentFlags(t *testing.T) {
	cmd := testRootCmd()

	require.NotNil(t, cmd.PersistentFlags().Lookup(localeFlagName))
	require.NotNil(t, cmd.PersistentFlags().Lookup(logFileFlagName))
	require.NotNil(t, cmd.PersistentFlags().Lookup(verboseFlagName))
}
