// Package app собирает состояние клиента: сессию, профиль и черновик поста.
// Один экземпляр App передается командам CLI вместо глобальных переменных.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	clientapi "github.com/iudanet/gophblog/internal/client/api"
	"github.com/iudanet/gophblog/internal/client/editor"
	"github.com/iudanet/gophblog/internal/client/iocli"
	"github.com/iudanet/gophblog/internal/client/profile"
	"github.com/iudanet/gophblog/internal/client/session"
	"github.com/iudanet/gophblog/internal/client/storage"
	"github.com/iudanet/gophblog/internal/client/storage/boltdb"
)

// ErrNotAuthenticated команда требует авторизации
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'gophblog login' first")

// Config параметры подключения клиента
type Config struct {
	APIURL    string
	UploadURL string
	DBPath    string
	Timeout   time.Duration
}

// App корневой контроллер клиента
type App struct {
	io       iocli.IO
	logger   *slog.Logger
	storage  *boltdb.Storage
	metadata storage.MetadataStorage
	api      *clientapi.Client
	uploader *clientapi.Uploader
	session  *session.Manager
	store    *profile.Store
	draft    editor.Draft
	mu       sync.Mutex
}

// Open открывает локальное хранилище и создает клиентов бэкенда
func Open(ctx context.Context, cfg Config, io iocli.IO, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	uploadURL := cfg.UploadURL
	if uploadURL == "" {
		uploadURL = cfg.APIURL
	}

	apiClient := clientapi.NewClient(cfg.APIURL, clientapi.WithTimeout(cfg.Timeout))
	uploader := clientapi.NewUploader(uploadURL, clientapi.WithTimeout(cfg.Timeout))

	return &App{
		io:       io,
		logger:   logger,
		storage:  boltStorage,
		metadata: boltStorage,
		api:      apiClient,
		uploader: uploader,
		session:  session.NewManager(apiClient, boltStorage, io, logger),
	}, nil
}

// Close закрывает локальное хранилище
func (a *App) Close() error {
	return a.storage.Close()
}

// IO терминал приложения
func (a *App) IO() iocli.IO {
	return a.io
}

// State текущее состояние сессии
func (a *App) State() session.State {
	return a.session.State()
}

// Start определяет состояние сессии по сохраненному токену
func (a *App) Start(ctx context.Context) (session.State, error) {
	state, err := a.session.Resolve(ctx)
	a.apply(state)
	return state, err
}

// Login авторизует пользователя и запоминает логин для следующего входа
func (a *App) Login(ctx context.Context, creds session.LoginCredentials) (session.State, error) {
	state, err := a.session.Login(ctx, creds)
	a.apply(state)
	if err != nil {
		return state, err
	}
	a.rememberLogin(ctx, strings.TrimSpace(creds.Login))
	return state, nil
}

// Register регистрирует пользователя
func (a *App) Register(ctx context.Context, creds session.RegisterCredentials) (session.State, error) {
	state, err := a.session.Register(ctx, creds)
	a.apply(state)
	if err != nil {
		return state, err
	}
	a.rememberLogin(ctx, strings.TrimSpace(creds.Login))
	return state, nil
}

// Logout удаляет токен и сбрасывает профиль и черновик
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.apply(a.session.State())

	a.mu.Lock()
	a.draft.Clear()
	a.mu.Unlock()
	return nil
}

// Profile хранилище профиля или ErrNotAuthenticated
func (a *App) Profile() (*profile.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return nil, ErrNotAuthenticated
	}
	return a.store, nil
}

// Draft черновик нового поста. Живет, пока живет App.
func (a *App) Draft() *editor.Draft {
	return &a.draft
}

// LastLogin логин последнего успешного входа, пустая строка если его нет
func (a *App) LastLogin(ctx context.Context) string {
	login, err := a.metadata.GetLastLogin(ctx)
	if err != nil {
		return ""
	}
	return login
}

func (a *App) rememberLogin(ctx context.Context, login string) {
	if _, ok := session.IsAuthenticated(a.session.State()); !ok {
		return
	}
	if err := a.metadata.SaveLastLogin(ctx, login); err != nil {
		a.logger.WarnContext(ctx, "failed to save last login", slog.Any("error", err))
	}
}

// apply синхронизирует хранилище профиля с состоянием сессии
func (a *App) apply(state session.State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := session.IsAuthenticated(state)
	if !ok {
		a.store = nil
		return
	}
	if a.store != nil {
		a.store.Replace(p)
		return
	}
	a.store = profile.NewStore(p, a.api, a.uploader, a.session, a.io, a.logger)
}
