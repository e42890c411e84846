package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestSaveAndGetLastLogin(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Изначально логин не сохранён
	login, err := store.GetLastLogin(ctx)
	require.NoError(t, err)
	assert.Empty(t, login)

	require.NoError(t, store.SaveLastLogin(ctx, "login_1"))

	login, err = store.GetLastLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "login_1", login)

	// Перезапись
	require.NoError(t, store.SaveLastLogin(ctx, "login_2"))
	login, err = store.GetLastLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "login_2", login)
}

func TestLastLogin_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	})
	require.NoError(t, err)

	err = store.SaveLastLogin(ctx, "x")
	assert.ErrorContains(t, err, "metadata bucket not found")

	_, err = store.GetLastLogin(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")
}
