package cli

import (
	"github.com/spf13/cobra"
)

func (c *Cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(c.io, versionTemplate, c.build)
		},
	}
}
