package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ELGA-GmbH/mike-multi-project/internal/presentation"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [<component>]",
	Short: "List deployed versions",
	Long: `List deployed versions, newest first. Development versions (those
not starting with a digit) come before numbered releases. Without a
component argument, every component is listed.

Examples:
  mike list docs
  mike list --json | jq '.docs[].version'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg, err := loadRegistry(ctx, openStore())
		if err != nil {
			return err
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())

		if len(args) == 1 {
			component := args[0]
			if !reg.HasComponent(component) {
				return fmt.Errorf("component %q not found", component)
			}
			dtos := presentation.FromEntries(reg.Entries(component))
			if listJSON {
				return formatter.FormatJSON(dtos)
			}
			return formatter.FormatEntries(dtos)
		}

		doc := presentation.FromRegistry(reg)
		if listJSON {
			return formatter.FormatJSON(doc)
		}
		return formatter.FormatComponents(doc, reg.Components())
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listJSON, "json", "j", false,
		"emit machine-readable JSON")
	rootCmd.AddCommand(listCmd)
}
