// File: internal/infrastructure/storage/local.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
)

// LocalStorage keeps uploads on the local filesystem under rootPath, one
// subdirectory per bucket, and serves them from baseURL.
type LocalStorage struct {
	rootPath string
	baseURL  string
}

func NewLocalStorage(rootPath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStorage{
		rootPath: rootPath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) UploadFile(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.PublicURL(bucket, path), nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, bucket, path string) error {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return domainErrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, path)
}

// resolve joins and confines the object path to the storage root.
func (s *LocalStorage) resolve(bucket, path string) (string, error) {
	full := filepath.Join(s.rootPath, bucket, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.rootPath, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path escapes storage root: %w", domainErrors.ErrInvalidInput)
	}
	return full, nil
}

var _ repository.Storage = (*LocalStorage)(nil)
