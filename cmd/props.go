package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ELGA-GmbH/mike-multi-project/internal/jsonpath"
	"github.com/ELGA-GmbH/mike-multi-project/internal/log"
)

var (
	propsGet       string
	propsSet       []string
	propsSetString []string
	propsDelete    []string
	propsMessage   string
)

var propsCmd = &cobra.Command{
	Use:   "props <component> <version>",
	Short: "Read or modify the properties of a version",
	Long: `Read or modify the opaque properties attached to a version.
Properties are addressed by dotted/bracketed path expressions.

Examples:
  # Show all properties
  mike props docs 1.0

  # Read a nested value
  mike props docs 1.0 --get ci.checks[0]

  # Set values (JSON and raw string forms)
  mike props docs 1.0 --set hidden=true --set-string tag=lts

  # Remove a value
  mike props docs 1.0 --delete hidden`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, identifier := args[0], args[1]
		ctx := cmd.Context()

		store := openStore()
		reg, err := loadRegistry(ctx, store)
		if err != nil {
			return err
		}
		if _, err := reg.Resolve(component, identifier); err != nil {
			return err
		}
		entry, _ := reg.Get(component, identifier)

		if propsGet != "" {
			value, ok, err := jsonpath.Get(entry.Properties(), propsGet)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no property %q on %s in %s", propsGet, identifier, component)
			}
			return printJSON(cmd, value)
		}

		if len(propsSet) == 0 && len(propsSetString) == 0 && len(propsDelete) == 0 {
			return printJSON(cmd, entry.Properties())
		}

		props := entry.Properties()
		for _, assignment := range propsSet {
			expr, raw, ok := strings.Cut(assignment, "=")
			if !ok {
				return fmt.Errorf("--set needs the form path=json, got %q", assignment)
			}
			var value any
			if err := json.Unmarshal([]byte(raw), &value); err != nil {
				return fmt.Errorf("value of %q is not valid JSON: %w", expr, err)
			}
			if props, err = jsonpath.Set(props, expr, value); err != nil {
				return err
			}
			log.Debug(log.CatProps, "set property", "path", expr)
		}
		for _, assignment := range propsSetString {
			expr, raw, ok := strings.Cut(assignment, "=")
			if !ok {
				return fmt.Errorf("--set-string needs the form path=value, got %q", assignment)
			}
			if props, err = jsonpath.Set(props, expr, raw); err != nil {
				return err
			}
			log.Debug(log.CatProps, "set property", "path", expr)
		}
		for _, expr := range propsDelete {
			if props, err = jsonpath.Delete(props, expr); err != nil {
				return err
			}
			log.Debug(log.CatProps, "deleted property", "path", expr)
		}
		entry.SetProperties(props)

		message := propsMessage
		if message == "" {
			message = fmt.Sprintf("Updated properties of %s in %s", identifier, component)
		}
		if err := saveRegistry(ctx, store, reg, message); err != nil {
			return err
		}

		logger.Info("properties updated", "component", component, "version", identifier)
		return nil
	},
}

func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func init() {
	propsCmd.Flags().StringVar(&propsGet, "get", "",
		"print the value at this path")
	propsCmd.Flags().StringArrayVar(&propsSet, "set", nil,
		"set path=json-value (repeatable)")
	propsCmd.Flags().StringArrayVar(&propsSetString, "set-string", nil,
		"set path=string-value (repeatable)")
	propsCmd.Flags().StringArrayVar(&propsDelete, "delete", nil,
		"delete the value at this path (repeatable)")
	propsCmd.Flags().StringVarP(&propsMessage, "message", "m", "",
		"custom snapshot message")
	rootCmd.AddCommand(propsCmd)
}
