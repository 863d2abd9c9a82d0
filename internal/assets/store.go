package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("file is not a supported image type")
	ErrTooLarge        = errors.New("file exceeds the maximum allowed size")
)

// allowedTypes are the content types accepted for product images.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Store persists uploaded image assets under generated unique names and
// composes the resolvable URL other components depend on.
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	URL(name string) string
}

type diskStore struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewDiskStore creates a disk-backed asset store rooted at dir. Asset URLs
// are composed as <baseURL>/uploads/<name>.
func NewDiskStore(dir, baseURL string, maxBytes int64) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &diskStore{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}, nil
}

// Save stores the file content under a fresh unique name preserving the
// original extension. Content failing the type check or exceeding the size
// cap is rejected before anything is written to disk.
func (s *diskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	// Read one byte past the cap so oversized input is detectable.
	content, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	if int64(len(content)) > s.maxBytes {
		return "", ErrTooLarge
	}

	if !allowedTypes[http.DetectContentType(content)] {
		return "", ErrUnsupportedType
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to store asset: %w", err)
	}

	return name, nil
}

// URL composes the externally fetchable address of a stored asset.
func (s *diskStore) URL(name string) string {
	return s.baseURL + "/uploads/" + name
}
