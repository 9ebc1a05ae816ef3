package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(newCategoriesCreateCommand())

	return cmd
}

func newCategoriesCreateCommand() *cobra.Command {
	var request discourse.CreateCategoryRequest

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a category",
		Long:  "Create a category. Colors are six hex digits without the leading #.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request.Name = args[0]

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.Categories().Create(ctx, &request)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			return outputResult(result, renderCategory)
		},
	}

	cmd.Flags().StringVar(&request.Color, "color", "", "background color, e.g. 0088CC")
	cmd.Flags().StringVar(&request.TextColor, "text-color", "", "text color (default FFFFFF)")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func renderCategory(category *discourse.Category) error {
	if category == nil {
		return nil
	}

	return renderProperties([][]string{
		{"ID", strconv.FormatInt(category.ID, 10)},
		{"Name", category.Name},
		{"Slug", category.Slug},
		{"Color", category.Color},
		{"Text Color", category.TextColor},
	})
}
