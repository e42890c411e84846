package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophblog/internal/client/session"
	"github.com/iudanet/gophblog/internal/models"
)

// errQuit пользователь вышел из оболочки
var errQuit = errors.New("quit")

func (c *Cli) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session",
		Long: "Keep one session open and manage posts interactively. " +
			"Ctrl+C cancels the running request, 'quit' or EOF leaves the shell.",
		Args: cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.Context())
		}),
	}
}

func (c *Cli) runShell(ctx context.Context) error {
	state, err := c.app.Start(ctx)
	if err != nil {
		return err
	}
	c.greet(state)

	for ctx.Err() == nil {
		var err error
		if _, ok := session.IsAuthenticated(c.app.State()); ok {
			err = c.shellCommandLine(ctx)
		} else {
			err = c.shellAuthorize(ctx)
		}

		switch {
		case err == nil:
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			return nil
		case !isAlerted(err):
			c.io.Alert("Error: " + err.Error())
		}
	}
	return nil
}

// shellAuthorize экран входа: пока сессии нет, доступны только login и register
func (c *Cli) shellAuthorize(ctx context.Context) error {
	choice, err := c.io.ReadInput("login, register or quit? ")
	if err != nil {
		return err
	}

	return c.interruptible(ctx, func(ctx context.Context) error {
		switch strings.ToLower(choice) {
		case "login", "l", "":
			return c.runLogin(ctx, session.LoginCredentials{})
		case "register", "r":
			return c.runRegister(ctx, session.RegisterCredentials{})
		case "quit", "q", "exit":
			return errQuit
		default:
			return fmt.Errorf("unknown choice %q", choice)
		}
	})
}

func (c *Cli) shellCommandLine(ctx context.Context) error {
	line, err := c.io.ReadText("gophblog> ")
	if err != nil {
		return err
	}

	// Текст после одиночного пробела за командой передается как есть
	name, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	name = strings.TrimSpace(name)

	return c.interruptible(ctx, func(ctx context.Context) error {
		return c.shellExec(ctx, strings.ToLower(name), rest)
	})
}

func (c *Cli) shellExec(ctx context.Context, name, rest string) error {
	switch name {
	case "":
		return nil
	case "list", "ls", "posts":
		store, err := c.app.Profile()
		if err != nil {
			return err
		}
		return c.printPosts(store.Snapshot())
	case "add":
		return c.shellAdd(ctx, rest)
	case "attach":
		path := strings.TrimSpace(rest)
		if path == "" {
			return errors.New("usage: attach <path>")
		}
		if err := c.app.Draft().AttachFile(path); err != nil {
			return err
		}
		c.io.Printf("Attached %s.\n", c.app.Draft().Media().Name)
		return nil
	case "detach":
		c.app.Draft().Detach()
		return nil
	case "edit":
		id, text, hasText := strings.Cut(strings.TrimLeft(rest, " "), " ")
		id = strings.TrimSpace(id)
		if id == "" {
			return errors.New("usage: edit <id> [text]")
		}
		if !hasText {
			return c.shellEdit(ctx, models.NewPostID(id), nil)
		}
		return c.shellEdit(ctx, models.NewPostID(id), &text)
	case "delete", "rm":
		id := strings.TrimSpace(rest)
		if id == "" {
			return errors.New("usage: delete <id>")
		}
		store, err := c.app.Profile()
		if err != nil {
			return err
		}
		if err := store.Delete(ctx, models.NewPostID(id)); err != nil {
			return err
		}
		c.io.Printf("Post %s deleted.\n", id)
		return nil
	case "logout":
		return c.runLogout(ctx)
	case "help", "?":
		c.io.Printf("%s", shellHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type 'help'", name)
	}
}

// shellAdd создает пост из черновика. Черновик переживает неудачную попытку.
func (c *Cli) shellAdd(ctx context.Context, text string) error {
	store, err := c.app.Profile()
	if err != nil {
		return err
	}

	draft := c.app.Draft()
	if text != "" {
		draft.SetText(text)
	} else if !draft.HasMedia() && draft.Text == "" {
		input, err := c.io.ReadText("Text: ")
		if err != nil {
			return fmt.Errorf("failed to read text: %w", err)
		}
		draft.SetText(input)
	}

	post, err := store.Create(ctx, draft)
	if err != nil {
		return err
	}
	c.io.Printf("Post %s created.\n", post.ID)
	return nil
}

func (c *Cli) shellEdit(ctx context.Context, id models.PostID, text *string) error {
	store, err := c.app.Profile()
	if err != nil {
		return err
	}
	return c.editPost(ctx, store, id, text)
}

// interruptible выполняет fn с контекстом, который отменяется по Ctrl+C.
// Сама оболочка при этом продолжает работу.
func (c *Cli) interruptible(ctx context.Context, fn func(ctx context.Context) error) error {
	opCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err := fn(opCtx)
	if err != nil && opCtx.Err() != nil && ctx.Err() == nil {
		return errors.New("interrupted")
	}
	return err
}
