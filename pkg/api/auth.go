package api

import "github.com/iudanet/gophblog/internal/models"

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // отображаемое имя
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	AccessToken string `json:"acc_token"` // bearer token
}

// ProfileResponse представляет ответ GET /user/profile
type ProfileResponse struct {
	Data models.Profile `json:"data"`
}

// MessageResponse представляет ответ без полезной нагрузки
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
