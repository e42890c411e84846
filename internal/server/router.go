package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iudanet/gophblog/internal/server/handlers"
	"github.com/iudanet/gophblog/internal/server/middleware"
)

// Handlers набор обработчиков, которые раздает роутер
type Handlers struct {
	Auth   *handlers.AuthHandler
	Blog   *handlers.BlogHandler
	Upload *handlers.UploadHandler
	Health *handlers.HealthHandler
}

// NewRouter настраивает маршруты бэкенда блога
func NewRouter(logger *slog.Logger, jwtConfig handlers.JWTConfig, h Handlers, limiter *middleware.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingWithSkip(logger, "/health"))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(logger, w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(logger, w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", h.Health.Health)

	// Сервис медиафайлов
	r.Post("/upload", h.Upload.Upload)
	r.Get(handlers.FilesPath+"{name}", h.Upload.Files)

	// Публичные маршруты с ограничением частоты
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/user/login", h.Auth.Login)
		r.Post("/user/new", h.Auth.Register)
	})

	// Защищенные маршруты
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(logger, jwtConfig))
		r.Get("/user/profile", h.Auth.Profile)
		r.Post("/blog/new", h.Blog.Create)
		r.Delete("/blog/delete", h.Blog.Delete)
		r.Patch("/blog/update", h.Blog.Update)
	})

	return r
}
