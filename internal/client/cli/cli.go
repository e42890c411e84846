// Package cli реализует команды gophblog поверх app.App.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	clientapi "github.com/iudanet/gophblog/internal/client/api"
	"github.com/iudanet/gophblog/internal/client/app"
	"github.com/iudanet/gophblog/internal/client/iocli"
	"github.com/iudanet/gophblog/internal/client/profile"
	"github.com/iudanet/gophblog/internal/client/session"
	"github.com/iudanet/gophblog/internal/config"
)

// BuildInfo информация о сборке, задается через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Cli общее состояние команд одного запуска
type Cli struct {
	io     iocli.IO
	logOut io.Writer
	app    *app.App
	build  BuildInfo
}

// New создает CLI поверх терминала io. Логи пишутся в stderr.
func New(io iocli.IO, build BuildInfo) *Cli {
	return &Cli{io: io, logOut: os.Stderr, build: build}
}

// Execute разбирает аргументы и выполняет команду
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Run выполняет команду и возвращает код выхода процесса.
// Ошибки, о которых пользователь еще не уведомлен, выводятся в stderr.
func (c *Cli) Run(ctx context.Context, args []string) int {
	err := c.Execute(ctx, args)
	if err == nil {
		return 0
	}
	if !isAlerted(err) {
		c.io.Alert("Error: " + err.Error())
	}
	return 1
}

// open загружает конфигурацию и открывает приложение
func (c *Cli) open(cmd *cobra.Command) error {
	if err := config.LoadEnvFiles(); err != nil {
		return err
	}

	cfg, err := config.LoadClient(cmd.Flags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewTextLogger(c.logOut, cfg.LogLevel)
	if err != nil {
		return err
	}

	a, err := app.Open(cmd.Context(), app.Config{
		APIURL:    cfg.APIURL,
		UploadURL: cfg.UploadURL,
		DBPath:    cfg.DBPath,
		Timeout:   cfg.Timeout,
	}, c.io, logger)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *Cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// requireProfile определяет сессию и возвращает профиль
// или ошибку, если пользователь не авторизован
func (c *Cli) requireProfile(ctx context.Context) (*profile.Store, error) {
	if _, err := c.app.Start(ctx); err != nil {
		return nil, err
	}
	return c.app.Profile()
}

// greet печатает приветствие для авторизованного состояния
func (c *Cli) greet(state session.State) {
	if p, ok := session.IsAuthenticated(state); ok {
		c.io.Printf("Hello, %s!\n", p.Username)
		return
	}
	c.io.Println("Please authorize.")
}

// isAlerted сообщает, что пользователь уже получил уведомление об ошибке
func isAlerted(err error) bool {
	var uploadErr *clientapi.UploadError
	return errors.As(err, &uploadErr) ||
		errors.Is(err, session.ErrLoginRejected) ||
		errors.Is(err, session.ErrRegisterRejected) ||
		errors.Is(err, profile.ErrRejected) ||
		errors.Is(err, profile.ErrNotLoggedIn)
}
