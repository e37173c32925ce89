// Package cmd implements the cobra-based command-line surface:
// run-all, run <Selector>, list, version, and self-update. None of it
// is consulted by the core engine — it is the outermost layer that
// wires internal/app's Application to os.Args.
package cmd

import (
	"github.com/spf13/cobra"

	"xctestgo/internal/app"
	"xctestgo/internal/registration"
)

var (
	flagDebug      bool
	flagConfigPath string
	flagTUI        bool

	// lastRunExitCode carries the process exit code out of the "run"
	// subcommand's RunE, which returns nil on a completed run (even one
	// with test failures) so cobra never prints its own "Error: ..."
	// line over the canonical test-result output. Execute reads it
	// after root.Execute() returns.
	lastRunExitCode int
)

// NewRootCmd builds the root cobra.Command for a bundle of registered
// test entries. bundleName labels the "<bundleName>.xctest" suite in a
// selector-less run (spec.md §4.G); version is printed by the version
// subcommand and is checked against the latest release by self-update.
func NewRootCmd(bundleName string, entries []registration.Entry, version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "xctestgo",
		Short:         "Run and list a bundle of registered test classes",
		Long:          `xctestgo executes a hierarchical bundle of test classes and methods, reporting results in XCTest's canonical textual format.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "xctestgo version %s\n" .Version}}`)

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug-level diagnostic logging")
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a config.yaml file, bypassing the layered user/project lookup")
	root.PersistentFlags().BoolVar(&flagTUI, "tui", false, "use the interactive bubbletea progress observer instead of plain console output")

	root.AddCommand(newRunCmd(bundleName, entries))
	root.AddCommand(newListCmd(bundleName, entries))
	root.AddCommand(newVersionCmd())
	root.AddCommand(newSelfUpdateCmd())

	return root
}

// Execute runs root to completion and returns the process exit code: 0
// on a clean cobra invocation with every test passing, 1 if cobra
// itself rejected the invocation (bad flags, unknown command) or the
// test run recorded any failure.
func Execute(root *cobra.Command) int {
	lastRunExitCode = 0
	if err := root.Execute(); err != nil {
		return 1
	}
	return lastRunExitCode
}

func buildAppConfig(bundleName string, selectors []string) *app.Config {
	return &app.Config{
		BundleName: bundleName,
		Selectors:  selectors,
		TUIMode:    flagTUI,
		Debug:      flagDebug,
		ConfigPath: flagConfigPath,
	}
}
