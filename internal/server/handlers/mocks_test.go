package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophblog/internal/models"
	"github.com/iudanet/gophblog/internal/server/storage"
)

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

var testJWTConfig = JWTConfig{
	Secret:         []byte("test-secret"),
	AccessTokenTTL: 15 * time.Minute,
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // login -> User
	createError     error
	getUserError    error
	updateLastLogin func(ctx context.Context, userID string, loginTime time.Time) error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Login]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Login] = user
	return nil
}

func (m *mockUserStorage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[login]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error {
	if m.updateLastLogin != nil {
		return m.updateLastLogin(ctx, userID, loginTime)
	}
	return nil
}

// mockPostStorage is an in-memory PostStorage, posts are kept newest first
type mockPostStorage struct {
	posts     map[string][]models.Post // userID -> posts
	listError error
	saveError error
}

func newMockPostStorage() *mockPostStorage {
	return &mockPostStorage{posts: make(map[string][]models.Post)}
}

func (m *mockPostStorage) CreatePost(ctx context.Context, userID string, post *models.Post) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.posts[userID] = append([]models.Post{*post}, m.posts[userID]...)
	return nil
}

func (m *mockPostStorage) ListPosts(ctx context.Context, userID string) ([]models.Post, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return append([]models.Post{}, m.posts[userID]...), nil
}

func (m *mockPostStorage) UpdatePostContent(ctx context.Context, userID string, postID models.PostID, content models.PostContent) (*models.Post, error) {
	if m.saveError != nil {
		return nil, m.saveError
	}
	posts := m.posts[userID]
	i := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID.Matches(postID) })
	if i < 0 {
		return nil, storage.ErrPostNotFound
	}
	posts[i].Content = content
	post := posts[i]
	return &post, nil
}

func (m *mockPostStorage) DeletePost(ctx context.Context, userID string, postID models.PostID) error {
	if m.saveError != nil {
		return m.saveError
	}
	posts := m.posts[userID]
	i := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID.Matches(postID) })
	if i < 0 {
		return storage.ErrPostNotFound
	}
	m.posts[userID] = slices.Delete(posts, i, i+1)
	return nil
}

// newJSONRequest creates a request with JSON body, optionally authenticated as userID
func newJSONRequest(t *testing.T, method, target string, body any, userID string) *http.Request {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(WithUser(req.Context(), userID, "Alice"))
	}
	return req
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}
