package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artcontest/contest-backend/domain"
)

func TestLocalStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewLocalStore(dir, "uploads/")

	file, err := store.Put(context.Background(), "1-ana.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "1-ana.jpg", file.Key)
	assert.Equal(t, "/uploads/1-ana.jpg", file.URL)
	assert.Equal(t, domain.StorageLocal, file.Storage)
	assert.Equal(t, filepath.Join(dir, "1-ana.jpg"), file.LocalPath)

	data, err := os.ReadFile(file.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestLocalStorePutRejectsPathKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	_, err := store.Put(context.Background(), "../escape.jpg", []byte("x"), "image/jpeg")
	assert.Error(t, err)
}

func TestLocalStorePutDoesNotOverwrite(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	_, err := store.Put(context.Background(), "1-ana.jpg", []byte("first"), "image/jpeg")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "1-ana.jpg", []byte("second"), "image/jpeg")
	assert.Error(t, err)
}

func TestLocalStorePutCanceled(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "1-ana.jpg", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, context.Canceled)
}
