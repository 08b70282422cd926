package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	deployTitle         string
	deployAliases       []string
	deployUpdateAliases bool
	deployMessage       string
)

var deployCmd = &cobra.Command{
	Use:   "deploy <component> <version>",
	Short: "Record a deployed version of a component",
	Long: `Record a deployed version in the registry. Deploying an existing
version updates it in place: the title is replaced when given and any
aliases are added to its alias set.

Examples:
  # First deployment of a version
  mike deploy docs 1.0 --title 1.0.2 --alias latest

  # Re-deploy, moving "latest" here from whichever version holds it
  mike deploy docs 2.0 --alias latest --update-aliases`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, version := args[0], args[1]
		ctx := cmd.Context()

		store := openStore()
		reg, err := loadRegistry(ctx, store)
		if err != nil {
			return err
		}

		entry, err := reg.Add(component, version, deployTitle, deployAliases,
			deployUpdateAliases || cfg.UpdateAliases)
		if err != nil {
			return err
		}

		message := deployMessage
		if message == "" {
			message = fmt.Sprintf("Deployed %s of %s", entry.Identifier(), component)
			if aliases := entry.Aliases(); len(aliases) > 0 {
				message += " with aliases " + strings.Join(aliases, ", ")
			}
		}
		if err := saveRegistry(ctx, store, reg, message); err != nil {
			return err
		}

		logger.Info("deployed",
			"component", component,
			"version", entry.Identifier(),
			"aliases", strings.Join(entry.Aliases(), ", "))
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVarP(&deployTitle, "title", "t", "",
		"display title for the version")
	deployCmd.Flags().StringArrayVarP(&deployAliases, "alias", "a", nil,
		"alias to assign to this version (repeatable)")
	deployCmd.Flags().BoolVarP(&deployUpdateAliases, "update-aliases", "u", false,
		"allow moving aliases from other versions")
	deployCmd.Flags().StringVarP(&deployMessage, "message", "m", "",
		"custom snapshot message")
	rootCmd.AddCommand(deployCmd)
}
