package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type addOptions struct {
	text    string
	file    string
	textSet bool
}

func (c *Cli) addCommand() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a text post or upload media",
		Long: "Create a post. With --file the media is uploaded first and the post " +
			"links to it; the text is then ignored.",
		Args: cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			opts.textSet = cmd.Flags().Changed("text")
			return c.runAdd(cmd.Context(), opts)
		}),
	}
	cmd.Flags().StringVar(&opts.text, "text", "", "Post text (prompted if neither --text nor --file is given)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Image or video file to upload")

	return cmd
}

func (c *Cli) runAdd(ctx context.Context, opts addOptions) error {
	store, err := c.requireProfile(ctx)
	if err != nil {
		return err
	}

	draft := c.app.Draft()
	draft.Clear()

	if opts.file != "" {
		if err := draft.AttachFile(opts.file); err != nil {
			return err
		}
	}

	text := opts.text
	if !opts.textSet && opts.file == "" {
		if text, err = c.io.ReadText("Text: "); err != nil {
			return fmt.Errorf("failed to read text: %w", err)
		}
	}
	draft.SetText(text)

	post, err := store.Create(ctx, draft)
	if err != nil {
		return err
	}

	c.io.Printf("Post %s created.\n", post.ID)
	return renderPost(c.io, *post)
}
