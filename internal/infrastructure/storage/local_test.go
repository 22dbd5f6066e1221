// File: internal/infrastructure/storage/local_test.go
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
)

func TestLocalStorageUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "http://localhost:3000/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.UploadFile(ctx, "documents", "7/front/photo.jpg", []byte("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/documents/7/front/photo.jpg", url)

	data, err := os.ReadFile(filepath.Join(root, "documents", "7", "front", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	require.NoError(t, s.DeleteFile(ctx, "documents", "7/front/photo.jpg"))
	_, err = os.Stat(filepath.Join(root, "documents", "7", "front", "photo.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageDeleteMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:3000/uploads")
	require.NoError(t, err)

	err = s.DeleteFile(context.Background(), "documents", "missing.jpg")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestLocalStorageRejectsPathEscape(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:3000/uploads")
	require.NoError(t, err)

	_, err = s.UploadFile(context.Background(), "documents", "../../etc/passwd", []byte("x"), "text/plain")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
}

func TestLocalStoragePublicURL(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://cdn.example.com/uploads")
	require.NoError(t, err)

	assert.Equal(t, "http://cdn.example.com/uploads/documents/a/b.png", s.PublicURL("documents", "a/b.png"))
}
