package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/gophblog/internal/models"
	"github.com/iudanet/gophblog/internal/server/storage"
	"github.com/iudanet/gophblog/internal/validation"
	"github.com/iudanet/gophblog/pkg/api"
)

// AuthHandler обрабатывает запросы пользователей: регистрация, вход, профиль
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	postStorage storage.PostStorage
	jwtConfig   JWTConfig
	hashCost    int
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, postStorage storage.PostStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		postStorage: postStorage,
		jwtConfig:   jwtConfig,
		hashCost:    bcrypt.DefaultCost,
	}
}

// Register обрабатывает POST /user/new
// Регистрация нового пользователя, в ответ сразу выдается токен
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Login = strings.TrimSpace(req.Login)
	req.Username = strings.TrimSpace(req.Username)

	if err := validation.ValidateUsername(req.Username); err != nil {
		SendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateLogin(req.Login); err != nil {
		h.logger.WarnContext(ctx, "invalid login", slog.String("login", req.Login), slog.Any("error", err))
		SendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		SendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.hashCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Login:        req.Login,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLogin:    &now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "login already taken", slog.String("login", req.Login))
			SendError(h.logger, w, "login already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("login", user.Login),
		slog.String("user_id", user.ID))

	h.sendToken(w, r, user, http.StatusCreated)
}

// Login обрабатывает POST /user/login
// Аутентификация пользователя по login и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		SendError(h.logger, w, "login and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("login", req.Login))
			SendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("login", req.Login))
		SendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// Ошибка обновления last_login не мешает входу
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	h.sendToken(w, r, user, http.StatusOK)
}

// Profile обрабатывает GET /user/profile
// Возвращает имя пользователя и его посты, новые первыми
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "token of unknown user", slog.String("user_id", userID))
			SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	posts, err := h.postStorage.ListPosts(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list posts", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ProfileResponse{
		Data: models.Profile{
			Username: user.Username,
			Blogs:    posts,
		},
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

func (h *AuthHandler) sendToken(w http.ResponseWriter, r *http.Request, user *models.User, statusCode int) {
	token, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to generate access token", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.TokenResponse{AccessToken: token}, statusCode)
}
