// Package profile хранит профиль авторизованного пользователя в памяти
// и применяет к нему изменения постов после подтверждения сервером.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	clientapi "github.com/iudanet/gophblog/internal/client/api"
	"github.com/iudanet/gophblog/internal/client/editor"
	"github.com/iudanet/gophblog/internal/client/storage"
	"github.com/iudanet/gophblog/internal/models"
)

//go:generate moq -out api_mock.go . API

// API методы бэкенда для работы с постами
type API interface {
	CreatePost(ctx context.Context, token string, content models.PostContent) (*models.Post, error)
	DeletePost(ctx context.Context, token string, id models.PostID) error
	UpdatePost(ctx context.Context, token string, id models.PostID, content models.PostContent) (*models.PostContent, error)
}

// TokenSource отдает текущий токен сессии
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Notifier показывает пользователю блокирующее уведомление
type Notifier interface {
	Alert(message string)
}

// Тексты уведомлений
const (
	MessageLoginFirst   = "Please log in first."
	MessageAddFailed    = "Failed to add content."
	MessageDeleteFailed = "Failed to delete content."
	MessageUpdateFailed = "Failed to update content."
	MessageUploadFailed = "Failed to upload media file."
)

var (
	// ErrNotLoggedIn операция отклонена локально, токена нет
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrRejected сервер отклонил изменение
	ErrRejected = errors.New("change rejected by server")
)

// Store профиль пользователя в памяти.
// Изменения выполняются по одному: следующая операция ждет, пока
// предыдущая цепочка запросов не завершится.
type Store struct {
	api      API
	uploader editor.Uploader
	tokens   TokenSource
	notifier Notifier
	logger   *slog.Logger
	profile  *models.Profile
	seq      sync.Mutex
	mu       sync.RWMutex
}

// NewStore создает хранилище с копией профиля
func NewStore(
	profile *models.Profile,
	apiClient API,
	uploader editor.Uploader,
	tokens TokenSource,
	notifier Notifier,
	logger *slog.Logger,
) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	p := profile.Clone()
	if p == nil {
		p = &models.Profile{}
	}
	if p.Blogs == nil {
		p.Blogs = []models.Post{}
	}
	return &Store{
		api:      apiClient,
		uploader: uploader,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		profile:  p,
	}
}

// Snapshot возвращает копию профиля
func (s *Store) Snapshot() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Username имя владельца профиля
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Username
}

// Post возвращает пост по идентификатору
func (s *Store) Post(id models.PostID) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.profile.IndexOf(id)
	if idx < 0 {
		return models.Post{}, false
	}
	return s.profile.Blogs[idx], true
}

// Replace заменяет профиль целиком, например после повторной загрузки
func (s *Store) Replace(profile *models.Profile) {
	p := profile.Clone()
	if p == nil {
		p = &models.Profile{}
	}
	if p.Blogs == nil {
		p.Blogs = []models.Post{}
	}

	s.seq.Lock()
	defer s.seq.Unlock()
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

// Create загружает медиафайл черновика (если есть), создает пост
// и добавляет его в начало списка. Черновик очищается только при успехе.
func (s *Store) Create(ctx context.Context, draft *editor.Draft) (*models.Post, error) {
	s.seq.Lock()
	defer s.seq.Unlock()

	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	content, err := draft.Content(ctx, s.uploader)
	if err != nil {
		var uploadErr *clientapi.UploadError
		if errors.As(err, &uploadErr) {
			s.notifier.Alert(MessageUploadFailed + uploadErr.Message)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "error uploading media file", slog.Any("error", err))
		return nil, err
	}

	post, err := s.api.CreatePost(ctx, token, content)
	if err != nil {
		return nil, s.failed(ctx, err, MessageAddFailed, "error adding content")
	}

	s.mu.Lock()
	blogs := slices.DeleteFunc(s.profile.Blogs, func(p models.Post) bool {
		return p.ID.Matches(post.ID)
	})
	s.profile.Blogs = slices.Insert(blogs, 0, *post)
	s.mu.Unlock()

	draft.Clear()

	s.logger.DebugContext(ctx, "post created", slog.String("id", post.ID.String()))
	return post, nil
}

// Delete удаляет пост на сервере и после подтверждения убирает
// из списка все записи с этим идентификатором
func (s *Store) Delete(ctx context.Context, id models.PostID) error {
	s.seq.Lock()
	defer s.seq.Unlock()

	token, err := s.token(ctx)
	if err != nil {
		return err
	}

	if err := s.api.DeletePost(ctx, token, s.knownID(id)); err != nil {
		return s.failed(ctx, err, MessageDeleteFailed, "error deleting content")
	}

	s.mu.Lock()
	s.profile.Blogs = slices.DeleteFunc(s.profile.Blogs, func(p models.Post) bool {
		return p.ID.Matches(id)
	})
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "post deleted", slog.String("id", id.String()))
	return nil
}

// Update отправляет новый текст поста. Тип содержимого всегда text.
// В списке сохраняется содержимое из ответа сервера, id и дата не меняются.
func (s *Store) Update(ctx context.Context, id models.PostID, text string) (*models.Post, error) {
	s.seq.Lock()
	defer s.seq.Unlock()

	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	content, err := s.api.UpdatePost(ctx, token, s.knownID(id), models.PostContent{
		Type:    models.ContentTypeText,
		Content: text,
	})
	if err != nil {
		return nil, s.failed(ctx, err, MessageUpdateFailed, "error updating content")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.profile.IndexOf(id)
	if idx < 0 {
		// Пост мог быть удален параллельно, сервер изменение принял
		s.logger.WarnContext(ctx, "updated post not found locally", slog.String("id", id.String()))
		return &models.Post{ID: id, Content: *content}, nil
	}
	s.profile.Blogs[idx].Content = *content
	post := s.profile.Blogs[idx]
	return &post, nil
}

// knownID возвращает id поста из списка, чтобы сервер получил его
// в той же форме (строка или число), в какой отдал
func (s *Store) knownID(id models.PostID) models.PostID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.profile.IndexOf(id); idx >= 0 {
		return s.profile.Blogs[idx].ID
	}
	return id
}

func (s *Store) token(ctx context.Context) (string, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			s.notifier.Alert(MessageLoginFirst)
			return "", fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
		}
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	if token == "" {
		s.notifier.Alert(MessageLoginFirst)
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// failed обрабатывает ошибку изменения: на ответ сервера показывается
// уведомление, сетевая ошибка только логируется. Состояние сессии не меняется.
func (s *Store) failed(ctx context.Context, err error, message, logMsg string) error {
	if _, ok := clientapi.StatusCode(err); ok {
		s.notifier.Alert(message)
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	s.logger.ErrorContext(ctx, logMsg, slog.Any("error", err))
	return err
}
