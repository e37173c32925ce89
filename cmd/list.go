package cmd

import (
	"bytes"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"xctestgo/internal/registration"
)

// newListCmd builds the "list" subcommand: a human-readable table by
// default, or the JSON listing tree with --json, optionally copied to
// the clipboard instead of printed with --copy.
func newListCmd(bundleName string, entries []registration.Entry) *cobra.Command {
	var asJSON bool
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every registered test class and method",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := registration.All()
			filtered := registration.Apply(entries, filter)
			root := registration.Build(filtered, filter, bundleName)
			tree := registration.BuildTree(root)

			var output string
			if asJSON {
				data, err := registration.JSON(tree)
				if err != nil {
					return fmt.Errorf("rendering listing JSON: %w", err)
				}
				output = string(data)
			} else {
				output = renderListingTable(registration.LeafNames(tree))
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(output); err != nil {
					return fmt.Errorf("copying listing to clipboard: %w", err)
				}
				cmd.Println("Listing copied to clipboard.")
				return nil
			}

			cmd.Println(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the listing as a JSON tree instead of a table")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "copy the listing to the clipboard instead of printing it")

	return cmd
}

func renderListingTable(leafNames []string) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Test"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})

	for _, name := range leafNames {
		table.Append([]string{name})
	}
	table.SetFooter([]string{fmt.Sprintf("%d test(s)", len(leafNames))})
	table.Render()

	return buf.String()
}
