package models

import "time"

// User представляет пользователя на стороне сервера
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID           string     `json:"id"`                   // UUID пользователя
	Username     string     `json:"username"`             // отображаемое имя
	Login        string     `json:"login"`                // уникальный логин
	PasswordHash string     `json:"-"`                    // bcrypt хеш пароля
}
