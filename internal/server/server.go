// Package server собирает эталонный бэкенд блога: хранилище, обработчики и HTTP сервер.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/gophblog/internal/config"
	"github.com/iudanet/gophblog/internal/server/handlers"
	"github.com/iudanet/gophblog/internal/server/middleware"
	"github.com/iudanet/gophblog/internal/server/storage/sqlite"
)

const (
	// AuthRateLimit допустимое число запросов входа и регистрации с одного IP за AuthRateWindow
	AuthRateLimit  = 10
	AuthRateWindow = time.Minute

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Server эталонный бэкенд блога
type Server struct {
	logger  *slog.Logger
	storage *sqlite.Storage
	limiter *middleware.RateLimiter
	handler http.Handler
	addr    string
}

// New открывает хранилище и собирает обработчики
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, version string) (*Server, error) {
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	upload, err := handlers.NewUploadHandler(logger, cfg.UploadDir, cfg.PublicURL, cfg.MaxUploadSize)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: cfg.TokenTTL,
	}
	limiter := middleware.NewRateLimiter(AuthRateLimit, AuthRateWindow, logger)

	h := Handlers{
		Auth:   handlers.NewAuthHandler(logger, store, store, jwtConfig),
		Blog:   handlers.NewBlogHandler(logger, store),
		Upload: upload,
		Health: handlers.NewHealthHandler(logger, store, version),
	}

	return &Server{
		logger:  logger,
		storage: store,
		limiter: limiter,
		handler: NewRouter(logger, jwtConfig, h, limiter),
		addr:    cfg.Addr,
	}, nil
}

// Handler возвращает корневой HTTP обработчик
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run слушает адрес из конфигурации до отмены ctx, затем корректно завершает соединения
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	errC := make(chan error, 1)
	go func() {
		s.logger.Info("server started", slog.String("addr", ln.Addr().String()))
		errC <- srv.Serve(ln)
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Close освобождает ресурсы сервера
func (s *Server) Close() error {
	s.limiter.Stop()
	return s.storage.Close()
}
