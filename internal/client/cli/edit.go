package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/client/profile"
	"github.com/iudanet/gophblog/internal/models"
)

func (c *Cli) editCommand() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace the text of a post",
		Long:  "Replace the content of a post with text. Media posts become text posts.",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			var newText *string
			if cmd.Flags().Changed("text") {
				newText = &text
			}
			return c.runEdit(cmd.Context(), models.NewPostID(args[0]), newText)
		}),
	}
	cmd.Flags().StringVar(&text, "text", "", "New text (prompted if not set)")

	return cmd
}

func (c *Cli) runEdit(ctx context.Context, id models.PostID, text *string) error {
	store, err := c.requireProfile(ctx)
	if err != nil {
		return err
	}
	return c.editPost(ctx, store, id, text)
}

// editPost меняет текст поста. Если text nil, новый текст запрашивается.
func (c *Cli) editPost(ctx context.Context, store *profile.Store, id models.PostID, text *string) error {
	current, ok := store.Post(id)
	if !ok {
		return fmt.Errorf("post %s not found", id)
	}

	if text == nil {
		c.io.Printf("Current: %s\n", current.Content.Content)
		input, err := c.io.ReadText("New text: ")
		if err != nil {
			return fmt.Errorf("failed to read text: %w", err)
		}
		text = &input
	}

	post, err := store.Update(ctx, id, *text)
	if err != nil {
		return err
	}

	c.io.Printf("Post %s updated.\n", post.ID)
	return renderPost(c.io, *post)
}
