package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this login already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrPostNotFound indicates that the post does not exist or belongs to another user
	ErrPostNotFound = errors.New("post not found")
)
