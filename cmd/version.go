package cmd

import "github.com/spf13/cobra"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the xctestgo version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("xctestgo version %s\n", cmd.Root().Version)
		},
	}
}
