package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/models"
)

func (c *Cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "posts",
		Aliases: []string{"list"},
		Short:   "Show your posts",
		Args:    cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context())
		}),
	}
}

func (c *Cli) runList(ctx context.Context) error {
	store, err := c.requireProfile(ctx)
	if err != nil {
		return err
	}
	return c.printPosts(store.Snapshot())
}

// printPosts выводит профиль со списком постов
func (c *Cli) printPosts(p *models.Profile) error {
	if err := render(c.io, postsTemplate, p); err != nil {
		return fmt.Errorf("failed to render posts: %w", err)
	}
	return nil
}
