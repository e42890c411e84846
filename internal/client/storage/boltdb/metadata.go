package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

const (
	keyLastLogin = "last_login"
)

// SaveLastLogin saves the login of the last successful authentication
func (s *Storage) SaveLastLogin(ctx context.Context, login string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyLastLogin), []byte(login)); err != nil {
			return fmt.Errorf("failed to save last login: %w", err)
		}

		return nil
	})
}

// GetLastLogin retrieves the login of the last successful authentication
// Returns empty string if nobody has logged in yet
func (s *Storage) GetLastLogin(ctx context.Context) (string, error) {
	var login string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		login = string(bucket.Get([]byte(keyLastLogin)))
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to get last login: %w", err)
	}

	return login, nil
}
