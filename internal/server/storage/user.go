package storage

import (
	"context"
	"time"

	"github.com/iudanet/gophblog/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if login is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByLogin retrieves user by login
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
