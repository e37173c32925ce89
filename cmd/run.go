package cmd

import (
	"github.com/spf13/cobra"

	"xctestgo/internal/app"
	"xctestgo/internal/registration"
)

// newRunCmd builds the "run [Selector...]" subcommand: with no
// arguments it runs every registered method; each argument is a
// "ClassName" or "ClassName/methodName" selector (spec.md §6).
func newRunCmd(bundleName string, entries []registration.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "run [Selector...]",
		Short: "Run the whole bundle, or only the given selectors",
		Long: `run executes every registered test method by default.
Each positional argument filters to one class ("ClassName") or one
method ("ClassName/methodName"); selectors combine as a union.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication(buildAppConfig(bundleName, args))
			if err != nil {
				return err
			}

			code, err := application.Run(cmd.Context(), entries)
			if err != nil {
				return err
			}
			lastRunExitCode = code
			return nil
		},
	}
}
