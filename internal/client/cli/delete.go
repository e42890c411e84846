package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/models"
)

func (c *Cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a post",
		Args:    cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			return c.runDelete(cmd.Context(), models.NewPostID(args[0]))
		}),
	}
}

func (c *Cli) runDelete(ctx context.Context, id models.PostID) error {
	store, err := c.requireProfile(ctx)
	if err != nil {
		return err
	}

	if err := store.Delete(ctx, id); err != nil {
		return err
	}

	c.io.Printf("Post %s deleted.\n", id)
	return nil
}
