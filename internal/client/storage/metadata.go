package storage

import "context"

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastLogin saves the login used for the last successful authentication
	SaveLastLogin(ctx context.Context, login string) error

	// GetLastLogin retrieves the login of the last successful authentication
	// Returns empty string if nobody has logged in yet
	GetLastLogin(ctx context.Context) (string, error)
}
