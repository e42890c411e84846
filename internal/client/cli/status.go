package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		}),
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	state, err := c.app.Start(ctx)
	if err != nil {
		return err
	}
	c.greet(state)
	return nil
}
