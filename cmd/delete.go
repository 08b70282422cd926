package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	deleteAll     bool
	deleteMessage string
)

var deleteCmd = &cobra.Command{
	Use:   "delete <component> [<version-or-alias>...]",
	Short: "Remove versions or aliases from a component",
	Long: `Remove versions or aliases from one component. Deleting a version
drops the whole entry with its aliases; deleting an alias only strips it
from its owning version. Every identifier is resolved before anything is
removed, so a single unknown name fails the whole call without touching
the registry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, identifiers := args[0], args[1:]
		ctx := cmd.Context()

		if deleteAll == (len(identifiers) > 0) {
			return fmt.Errorf("specify either versions to delete or --all")
		}

		store := openStore()
		reg, err := loadRegistry(ctx, store)
		if err != nil {
			return err
		}

		if !reg.HasComponent(component) {
			return fmt.Errorf("component %q not found", component)
		}

		message := deleteMessage
		if deleteAll {
			for _, entry := range reg.Entries(component) {
				identifiers = append(identifiers, entry.Identifier())
			}
			if message == "" {
				message = fmt.Sprintf("Removed every version of %s", component)
			}
		} else if message == "" {
			message = fmt.Sprintf("Removed %s from %s", strings.Join(identifiers, ", "), component)
		}

		// Resolve up front only for reporting; RemoveAll re-checks strictly.
		var aliases, entries []string
		for _, identifier := range identifiers {
			if ref, ok := reg.Find(component, identifier); ok && ref.IsAlias() {
				aliases = append(aliases, identifier)
			} else {
				entries = append(entries, identifier)
			}
		}

		if _, err := reg.RemoveAll(component, identifiers); err != nil {
			return err
		}
		if err := saveRegistry(ctx, store, reg, message); err != nil {
			return err
		}

		if len(entries) > 0 {
			logger.Info("versions removed",
				"component", component, "versions", strings.Join(entries, ", "))
		}
		if len(aliases) > 0 {
			logger.Info("aliases removed",
				"component", component, "aliases", strings.Join(aliases, ", "))
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false,
		"remove every version of the component")
	deleteCmd.Flags().StringVarP(&deleteMessage, "message", "m", "",
		"custom snapshot message")
	rootCmd.AddCommand(deleteCmd)
}
