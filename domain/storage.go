package domain

import "context"

// StoredFile describes where a blob ended up
type StoredFile struct {
	Key       string
	URL       string
	Storage   string // StorageMinio or StorageLocal
	LocalPath string
}

// FileStore writes a blob under a key and returns its public location.
type FileStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (StoredFile, error)
}
