package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// NewSettingsCommand creates the site settings command group.
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"setting"},
		Short:   "Manage site settings",
	}

	cmd.AddCommand(newSettingsSetCommand())

	return cmd
}

func newSettingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME VALUE",
		Short: "Change a site setting",
		Long:  "Change a site setting. NAME may be snake_case or CamelCase.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.SiteSettings().Change(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to change site setting: %w", err)
			}

			return outputResult(result, func(setting *discourse.SiteSetting) error {
				if setting == nil {
					return nil
				}

				fmt.Printf("Set %s to %s\n", setting.Name, setting.Value)

				return nil
			})
		},
	}
}
