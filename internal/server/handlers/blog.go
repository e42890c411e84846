package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gophblog/internal/models"
	"github.com/iudanet/gophblog/internal/server/storage"
	"github.com/iudanet/gophblog/pkg/api"
)

// BlogHandler обрабатывает операции над постами пользователя
type BlogHandler struct {
	logger      *slog.Logger
	postStorage storage.PostStorage
	now         func() time.Time
}

// NewBlogHandler создает handler постов
func NewBlogHandler(logger *slog.Logger, postStorage storage.PostStorage) *BlogHandler {
	return &BlogHandler{
		logger:      logger,
		postStorage: postStorage,
		now:         time.Now,
	}
}

// Create обрабатывает POST /blog/new
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if msg, ok := validateContent(req.Content); !ok {
		SendError(h.logger, w, msg, http.StatusBadRequest)
		return
	}

	post := &models.Post{
		ID:      models.NewPostID(uuid.New().String()),
		Date:    h.now().UTC().Truncate(time.Millisecond),
		Content: req.Content,
	}

	if err := h.postStorage.CreatePost(ctx, userID, post); err != nil {
		h.logger.ErrorContext(ctx, "failed to create post", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "post created",
		slog.String("user_id", userID),
		slog.String("post_id", post.ID.String()),
		slog.String("type", string(post.Content.Type)))

	sendJSON(h.logger, w, api.PostResponse{Blog: *post}, http.StatusCreated)
}

// Delete обрабатывает DELETE /blog/delete, id поста передается в JSON теле
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.DeletePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode delete request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID.IsZero() {
		SendError(h.logger, w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.postStorage.DeletePost(ctx, userID, req.ID); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			SendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete post", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "post deleted", slog.String("user_id", userID), slog.String("post_id", req.ID.String()))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Post deleted"}, http.StatusOK)
}

// Update обрабатывает PATCH /blog/update
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID.IsZero() {
		SendError(h.logger, w, "id is required", http.StatusBadRequest)
		return
	}
	if msg, ok := validateContent(req.Content); !ok {
		SendError(h.logger, w, msg, http.StatusBadRequest)
		return
	}

	post, err := h.postStorage.UpdatePostContent(ctx, userID, req.ID, req.Content)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			SendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update post", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "post updated", slog.String("user_id", userID), slog.String("post_id", req.ID.String()))

	sendJSON(h.logger, w, api.PostResponse{Blog: *post}, http.StatusOK)
}

// validateContent проверяет тип содержимого поста.
// Текст может быть пустым, у медиа обязателен URL.
func validateContent(c models.PostContent) (string, bool) {
	switch c.Type {
	case models.ContentTypeText:
		return "", true
	case models.ContentTypeImage:
		if c.Content == "" {
			return "image content must contain file url", false
		}
		return "", true
	default:
		return "content type must be text or image", false
	}
}
