package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var retitleMessage string

var retitleCmd = &cobra.Command{
	Use:   "retitle <component> <version> <title>",
	Short: "Change the display title of a version",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, identifier, title := args[0], args[1], args[2]
		ctx := cmd.Context()

		store := openStore()
		reg, err := loadRegistry(ctx, store)
		if err != nil {
			return err
		}

		if _, err := reg.Update(component, identifier, title, nil, false); err != nil {
			return err
		}

		message := retitleMessage
		if message == "" {
			message = fmt.Sprintf("Set title of %s to %s in %s", identifier, title, component)
		}
		if err := saveRegistry(ctx, store, reg, message); err != nil {
			return err
		}

		logger.Info("retitled", "component", component, "version", identifier, "title", title)
		return nil
	},
}

func init() {
	retitleCmd.Flags().StringVarP(&retitleMessage, "message", "m", "",
		"custom snapshot message")
	rootCmd.AddCommand(retitleCmd)
}
