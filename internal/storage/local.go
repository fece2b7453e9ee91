package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// localStorage keeps objects as files below a root directory.
type localStorage struct {
	root string
}

// NewLocalStorage creates the root directory if needed and returns a FileStorage over it.
func NewLocalStorage(root string) (FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document directory %s: %w", root, err)
	}
	return &localStorage{root: root}, nil
}

// path resolves objectKey below root, refusing keys that escape it.
func (s *localStorage) path(objectKey string) (string, error) {
	clean := filepath.Clean("/" + objectKey)
	if clean == "/" || strings.Contains(objectKey, "..") {
		return "", fmt.Errorf("invalid object key %q", objectKey)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *localStorage) PutObject(ctx context.Context, objectKey string, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(objectKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (s *localStorage) Open(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	p, err := s.path(objectKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

func (s *localStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "", ErrPresignUnsupported
}

func (s *localStorage) DeleteObject(ctx context.Context, objectKey string) error {
	p, err := s.path(objectKey)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
