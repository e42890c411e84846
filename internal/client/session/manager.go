// Package session определяет состояние авторизации клиента и управляет жизненным циклом токена.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	clientapi "github.com/iudanet/gophblog/internal/client/api"
	"github.com/iudanet/gophblog/internal/client/storage"
	"github.com/iudanet/gophblog/internal/models"
	"github.com/iudanet/gophblog/pkg/api"
)

//go:generate moq -out api_mock.go . API

// API методы бэкенда, нужные для авторизации
type API interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error)
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
}

// Notifier показывает пользователю блокирующее уведомление
type Notifier interface {
	Alert(message string)
}

// Тексты уведомлений
const (
	MessageLoginFailed    = "Login failed! Please check your credentials."
	MessageRegisterFailed = "Registration failed! Please try again."
)

var (
	// ErrLoginRejected сервер отклонил логин
	ErrLoginRejected = errors.New("login rejected")

	// ErrRegisterRejected сервер отклонил регистрацию
	ErrRegisterRejected = errors.New("registration rejected")
)

// Manager управляет состоянием сессии
type Manager struct {
	api      API
	tokens   storage.TokenStorage
	notifier Notifier
	logger   *slog.Logger
	state    State
	mu       sync.RWMutex
}

// NewManager создает менеджер сессии в состоянии Resolving
func NewManager(apiClient API, tokens storage.TokenStorage, notifier Notifier, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		api:      apiClient,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		state:    Resolving{},
	}
}

// State возвращает текущее состояние
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) setState(ctx context.Context, s State) State {
	m.mu.Lock()
	prev := m.state
	m.state = s
	m.mu.Unlock()

	m.logger.DebugContext(ctx, "session state changed",
		slog.String("from", prev.String()),
		slog.String("to", s.String()))
	return s
}

// Token возвращает сохраненный токен или storage.ErrTokenNotFound
func (m *Manager) Token(ctx context.Context) (string, error) {
	return m.tokens.GetToken(ctx)
}

// Resolve определяет состояние сессии по сохраненному токену.
// Без токена сеть не используется. Ответ сервера вне 2xx удаляет токен,
// сетевая ошибка или невалидный ответ оставляют токен, но сессия
// все равно становится Unauthenticated.
// Ошибка возвращается только при сбое локального хранилища.
func (m *Manager) Resolve(ctx context.Context) (State, error) {
	m.setState(ctx, Resolving{})

	token, err := m.tokens.GetToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return m.setState(ctx, Unauthenticated{}), nil
		}
		m.setState(ctx, Unauthenticated{})
		return Unauthenticated{}, fmt.Errorf("failed to read session token: %w", err)
	}

	profile, err := m.api.GetProfile(ctx, token)
	if err != nil {
		if code, ok := clientapi.StatusCode(err); ok {
			m.logger.InfoContext(ctx, "stored token rejected by server", slog.Int("status", code))
			if delErr := m.tokens.DeleteToken(ctx); delErr != nil && !errors.Is(delErr, storage.ErrTokenNotFound) {
				m.setState(ctx, Unauthenticated{})
				return Unauthenticated{}, fmt.Errorf("failed to delete rejected token: %w", delErr)
			}
		} else {
			m.logger.ErrorContext(ctx, "error fetching user profile", slog.Any("error", err))
		}
		return m.setState(ctx, Unauthenticated{}), nil
	}

	return m.setState(ctx, Authenticated{Profile: profile}), nil
}

// Login отправляет обрезанные учетные данные, сохраняет токен и заново определяет сессию
func (m *Manager) Login(ctx context.Context, creds LoginCredentials) (State, error) {
	resp, err := m.api.Login(ctx, creds.request())
	if err != nil {
		return m.authFailed(ctx, err, ErrLoginRejected, MessageLoginFailed, "error during login")
	}
	return m.acceptToken(ctx, resp.AccessToken)
}

// Register регистрирует пользователя, сохраняет токен и заново определяет сессию
func (m *Manager) Register(ctx context.Context, creds RegisterCredentials) (State, error) {
	resp, err := m.api.Register(ctx, creds.request())
	if err != nil {
		return m.authFailed(ctx, err, ErrRegisterRejected, MessageRegisterFailed, "error during registration")
	}
	return m.acceptToken(ctx, resp.AccessToken)
}

// Logout удаляет сохраненный токен. Отсутствие токена ошибкой не считается.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.tokens.DeleteToken(ctx); err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	m.setState(ctx, Unauthenticated{})
	return nil
}

func (m *Manager) acceptToken(ctx context.Context, token string) (State, error) {
	if err := m.tokens.SaveToken(ctx, token); err != nil {
		m.setState(ctx, Unauthenticated{})
		return Unauthenticated{}, fmt.Errorf("failed to save session token: %w", err)
	}
	return m.Resolve(ctx)
}

// authFailed обрабатывает неуспешный логин или регистрацию.
// На ответ сервера показывается уведомление, сетевая ошибка только логируется.
func (m *Manager) authFailed(ctx context.Context, err, rejected error, message, logMsg string) (State, error) {
	m.setState(ctx, Unauthenticated{})

	if _, ok := clientapi.StatusCode(err); ok {
		m.notifier.Alert(message)
		return Unauthenticated{}, fmt.Errorf("%w: %w", rejected, err)
	}

	m.logger.ErrorContext(ctx, logMsg, slog.Any("error", err))
	return Unauthenticated{}, err
}
