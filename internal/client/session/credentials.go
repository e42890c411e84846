package session

import (
	"strings"

	"github.com/iudanet/gophblog/pkg/api"
)

// LoginCredentials данные формы входа. Живут только на время запроса.
type LoginCredentials struct {
	Login    string
	Password string
}

// RegisterCredentials данные формы регистрации
type RegisterCredentials struct {
	Username string
	Login    string
	Password string
}

// request возвращает запрос с обрезанными пробелами во всех полях
func (c LoginCredentials) request() api.LoginRequest {
	return api.LoginRequest{
		Login:    strings.TrimSpace(c.Login),
		Password: strings.TrimSpace(c.Password),
	}
}

func (c RegisterCredentials) request() api.RegisterRequest {
	return api.RegisterRequest{
		Username: strings.TrimSpace(c.Username),
		Login:    strings.TrimSpace(c.Login),
		Password: strings.TrimSpace(c.Password),
	}
}
