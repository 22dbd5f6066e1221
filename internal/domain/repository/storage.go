// File: internal/domain/repository/storage.go
package repository

import "context"

// Storage is the file storage contract for uploaded KYC documents. Backends:
// local filesystem, Supabase object storage, and any S3-compatible store.
type Storage interface {
	// UploadFile stores the file under bucket/path and returns its public URL.
	UploadFile(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}
