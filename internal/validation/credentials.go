package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LoginPattern определяет допустимый формат login
// Только латинские буквы, цифры, точка, дефис и нижнее подчеркивание
// Длина: 3-32 символа
var LoginPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

const (
	// MinLoginLen минимальная длина login
	MinLoginLen = 3
	// MaxLoginLen максимальная длина login
	MaxLoginLen = 32
	// MaxUsernameLen максимальная длина отображаемого имени в символах
	MaxUsernameLen = 64
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
	// MaxPasswordLen ограничение bcrypt на длину пароля в байтах
	MaxPasswordLen = 72
)

// ValidateLogin проверяет, что login соответствует требованиям
func ValidateLogin(login string) error {
	if login == "" {
		return fmt.Errorf("login cannot be empty")
	}

	if len(login) < MinLoginLen {
		return fmt.Errorf("login must be at least %d characters long", MinLoginLen)
	}

	if len(login) > MaxLoginLen {
		return fmt.Errorf("login must not exceed %d characters", MaxLoginLen)
	}

	if !LoginPattern.MatchString(login) {
		return fmt.Errorf("login can only contain letters (a-z, A-Z), numbers (0-9), dots, dashes and underscores")
	}

	return nil
}

// ValidateUsername проверяет отображаемое имя пользователя.
// Допускается любой текст без управляющих символов, не длиннее MaxUsernameLen символов.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if !utf8.ValidString(username) {
		return fmt.Errorf("username must be valid UTF-8")
	}

	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if strings.IndexFunc(username, unicode.IsControl) >= 0 {
		return fmt.Errorf("username cannot contain control characters")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}
