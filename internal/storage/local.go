package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/artcontest/contest-backend/domain"
)

// LocalStore writes files under a directory served statically at urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

var _ domain.FileStore = (*LocalStore)(nil)

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

// Dir is the directory files are written to.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Put(ctx context.Context, key string, data []byte, _ string) (domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredFile{}, err
	}
	if key != filepath.Base(key) {
		return domain.StoredFile{}, fmt.Errorf("invalid file key %q", key)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.StoredFile{}, fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.dir, key)
	if err := writeFile(path, bytes.NewReader(data)); err != nil {
		return domain.StoredFile{}, err
	}

	return domain.StoredFile{
		Key:       key,
		URL:       s.urlPrefix + "/" + key,
		Storage:   domain.StorageLocal,
		LocalPath: path,
	}, nil
}

func writeFile(path string, r io.Reader) (err error) {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = io.Copy(dst, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
