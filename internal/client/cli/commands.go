package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/config"
)

// RootCommand собирает дерево команд gophblog
func (c *Cli) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gophblog",
		Short:         "Personal blog client",
		Long:          "gophblog logs in to a blog backend and manages your posts from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.ClientFlags(root.PersistentFlags())

	root.SetOut(c.io)
	root.SetErr(c.io)

	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Create, edit and delete posts",
	}
	postCmd.AddCommand(
		c.addCommand(),
		c.editCommand(),
		c.deleteCommand(),
	)

	root.AddCommand(
		c.loginCommand(),
		c.registerCommand(),
		c.logoutCommand(),
		c.statusCommand(),
		c.listCommand(),
		postCmd,
		c.shellCommand(),
		c.versionCommand(),
	)

	return root
}

// withApp открывает приложение на время выполнения команды
func (c *Cli) withApp(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := c.open(cmd); err != nil {
			return err
		}
		defer func() {
			if cerr := c.close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close database: %w", cerr)
			}
		}()
		return fn(cmd, args)
	}
}
