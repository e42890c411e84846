package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/gophblog/internal/client/cli"
	"github.com/iudanet/gophblog/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// SIGTERM завершает процесс, Ctrl+C в shell отменяет только текущий запрос
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	c := cli.New(iocli.NewStdio(), cli.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	})

	code := c.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
