package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/client/session"
)

func (c *Cli) registerCommand() *cobra.Command {
	var creds session.RegisterCredentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			return c.runRegister(cmd.Context(), creds)
		}),
	}
	cmd.Flags().StringVar(&creds.Username, "username", "", "Display name (prompted if empty)")
	cmd.Flags().StringVar(&creds.Login, "login", "", "Login (prompted if empty)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Password (prompted if empty, not recommended)")

	return cmd
}

func (c *Cli) runRegister(ctx context.Context, creds session.RegisterCredentials) error {
	var err error

	if creds.Username == "" {
		if creds.Username, err = c.io.ReadInput("Username: "); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}
	if creds.Login == "" {
		if creds.Login, err = c.io.ReadInput("Login: "); err != nil {
			return fmt.Errorf("failed to read login: %w", err)
		}
	}
	if creds.Password == "" {
		if creds.Password, err = c.io.ReadPassword("Password: "); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	state, err := c.app.Register(ctx, creds)
	if err != nil {
		return err
	}
	c.greet(state)
	return nil
}
