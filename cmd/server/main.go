package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/config"
	"github.com/iudanet/gophblog/internal/server"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gophblog-server",
		Short:         "GophBlog reference backend",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServer,
	}
	config.ServerFlags(cmd.Flags())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd)
		},
	})

	return cmd
}

func runServer(cmd *cobra.Command, args []string) (err error) {
	if err := config.LoadEnvFiles(); err != nil {
		return err
	}

	cfg, err := config.LoadServer(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := config.NewJSONLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	srv, err := server.New(cmd.Context(), cfg, logger, Version)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, srv.Close())
	}()

	logger.Info("GophBlog Server starting",
		"version", Version,
		"addr", cfg.Addr,
		"db", cfg.DBPath,
		"upload_dir", cfg.UploadDir,
		"public_url", cfg.PublicURL,
	)

	return srv.Run(cmd.Context())
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "GophBlog Server\n")
	fmt.Fprintf(out, "Version:    %s\n", Version)
	fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
}
