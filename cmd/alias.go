package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	aliasUpdateAliases bool
	aliasMessage       string
)

var aliasCmd = &cobra.Command{
	Use:   "alias <component> <version> <alias>...",
	Short: "Add aliases to an existing version",
	Long: `Add one or more aliases to a version. The version may itself be
named by one of its aliases. Aliases held by other versions are only
moved when --update-aliases is set; otherwise the call fails and the
registry is left unchanged.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, identifier, aliases := args[0], args[1], args[2:]
		ctx := cmd.Context()

		store := openStore()
		reg, err := loadRegistry(ctx, store)
		if err != nil {
			return err
		}

		added, err := reg.Update(component, identifier, "", aliases,
			aliasUpdateAliases || cfg.UpdateAliases)
		if err != nil {
			return err
		}
		if len(added) == 0 {
			logger.Info("aliases already assigned", "component", component, "version", identifier)
			return nil
		}

		message := aliasMessage
		if message == "" {
			message = fmt.Sprintf("Added aliases %s to %s in %s",
				strings.Join(added, ", "), identifier, component)
		}
		if err := saveRegistry(ctx, store, reg, message); err != nil {
			return err
		}

		logger.Info("aliases added",
			"component", component,
			"version", identifier,
			"aliases", strings.Join(added, ", "))
		return nil
	},
}

func init() {
	aliasCmd.Flags().BoolVarP(&aliasUpdateAliases, "update-aliases", "u", false,
		"allow moving aliases from other versions")
	aliasCmd.Flags().StringVarP(&aliasMessage, "message", "m", "",
		"custom snapshot message")
	rootCmd.AddCommand(aliasCmd)
}
