package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/gophblog/internal/server/handlers"
)

// AuthMiddleware создает middleware для проверки bearer токена.
// Данные пользователя из токена кладутся в контекст запроса.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.DebugContext(ctx, "missing Authorization header", slog.String("path", r.URL.Path))
				handlers.SendError(logger, w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				logger.WarnContext(ctx, "invalid Authorization header format")
				handlers.SendError(logger, w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, token)
			if err != nil {
				logger.WarnContext(ctx, "invalid access token", slog.Any("error", err))
				handlers.SendError(logger, w, "invalid token", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(ctx, "user authenticated", slog.String("user_id", claims.UserID))

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, claims.UserID, claims.Username)))
		})
	}
}
