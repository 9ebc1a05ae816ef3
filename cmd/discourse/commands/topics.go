package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// NewTopicsCommand creates the topics command group.
func NewTopicsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"topic", "t"},
		Short:   "Manage topics",
	}

	cmd.AddCommand(newTopicsLatestCommand())
	cmd.AddCommand(newTopicsCreateCommand())

	return cmd
}

func newTopicsLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "List the latest topics",
		Long:  "List the latest topics, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.Topics().Latest(ctx)
			if err != nil {
				return fmt.Errorf("failed to list topics: %w", err)
			}

			return outputResult(result, renderTopics)
		},
	}
}

func renderTopics(topics []discourse.TopicSummary) error {
	if len(topics) == 0 {
		fmt.Println("No topics found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "Posts", "Category", "Created")

	for _, topic := range topics {
		_ = table.Append(
			strconv.FormatInt(topic.ID, 10),
			truncate(topic.Title, constants.TitleDisplayLength),
			strconv.Itoa(topic.PostsCount),
			strconv.FormatInt(topic.CategoryID, 10),
			formatTime(topic.CreatedAt),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newTopicsCreateCommand() *cobra.Command {
	var request discourse.CreateTopicRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.Topics().Create(ctx, &request)
			if err != nil {
				return fmt.Errorf("failed to create topic: %w", err)
			}

			return outputResult(result, renderPost)
		},
	}

	cmd.Flags().StringVar(&request.Title, "title", "", "topic title")
	cmd.Flags().StringVar(&request.Raw, "raw", "", "body of the first post")
	cmd.Flags().Int64Var(&request.CategoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&request.Username, "as", "", "post as this username instead of the API user")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("raw")

	return cmd
}

func renderPost(post *discourse.Post) error {
	if post == nil {
		return nil
	}

	return renderProperties([][]string{
		{"Post ID", strconv.FormatInt(post.ID, 10)},
		{"Topic ID", strconv.FormatInt(post.TopicID, 10)},
		{"Post Number", strconv.Itoa(post.PostNumber)},
		{"Username", post.Username},
		{"Created", formatTime(post.CreatedAt)},
	})
}
