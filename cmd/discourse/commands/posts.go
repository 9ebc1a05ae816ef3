package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// NewPostsCommand creates the posts command group.
func NewPostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post", "p"},
		Short:   "Manage posts",
	}

	cmd.AddCommand(newPostsCreateCommand())

	return cmd
}

func newPostsCreateCommand() *cobra.Command {
	var (
		request discourse.CreatePostRequest
		topic   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Reply in a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseTopicID(topic)
			if err != nil {
				return err
			}

			request.TopicID = topicID

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.Posts().Create(ctx, &request)
			if err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}

			return outputResult(result, renderPost)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "topic id")
	cmd.Flags().StringVar(&request.Raw, "raw", "", "post body")
	cmd.Flags().Int64Var(&request.CategoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&request.Username, "as", "", "post as this username instead of the API user")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("raw")

	return cmd
}
