package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/client/session"
)

func (c *Cli) loginCommand() *cobra.Command {
	var creds session.LoginCredentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the blog backend",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context(), creds)
		}),
	}
	cmd.Flags().StringVar(&creds.Login, "login", "", "Login (prompted if empty)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Password (prompted if empty, not recommended)")

	return cmd
}

func (c *Cli) runLogin(ctx context.Context, creds session.LoginCredentials) error {
	if creds.Login == "" {
		login, err := c.promptLogin(ctx)
		if err != nil {
			return err
		}
		creds.Login = login
	}

	if creds.Password == "" {
		password, err := c.io.ReadPassword("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		creds.Password = password
	}

	state, err := c.app.Login(ctx, creds)
	if err != nil {
		return err
	}
	c.greet(state)
	return nil
}

// promptLogin запрашивает логин, предлагая последний успешный
func (c *Cli) promptLogin(ctx context.Context) (string, error) {
	last := c.app.LastLogin(ctx)

	prompt := "Login: "
	if last != "" {
		prompt = fmt.Sprintf("Login [%s]: ", last)
	}

	login, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read login: %w", err)
	}
	if login == "" {
		login = last
	}
	return login, nil
}
