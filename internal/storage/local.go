package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage implements Storage on the local filesystem. Files live flat
// under uploadDir and are served from baseURL + "/uploads/".
type LocalStorage struct {
	uploadDir string
	baseURL   string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(uploadDir, baseURL string) (*LocalStorage, error) {
	err := os.MkdirAll(uploadDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	slog.Info("initialized local storage", "dir", uploadDir)
	return &LocalStorage{
		uploadDir: uploadDir,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Store writes the file under a generated name and returns its URL.
func (s *LocalStorage) Store(ctx context.Context, file io.Reader, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(filename)
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(dst, file)
	closeErr := dst.Close()
	if err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, name), nil
}

// Remove deletes the file the URL points at. Only the URL's final path
// segment is used, and it must resolve to a direct child of the upload
// root, so a crafted URL cannot reach outside it. A missing file counts
// as success.
func (s *LocalStorage) Remove(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filePath, err := s.resolve(rawURL)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// resolve maps a retrieval URL back to a path inside the upload root.
func (s *LocalStorage) resolve(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidObjectURL, err)
	}

	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("%w: no filename in %s", ErrInvalidObjectURL, rawURL)
	}

	filePath := filepath.Join(s.uploadDir, filepath.Base(name))

	// Join + Base above already strip separators; keep the containment
	// check as the invariant the rest of the code relies on.
	rel, err := filepath.Rel(s.uploadDir, filePath)
	if err != nil || rel != filepath.Base(name) || strings.Contains(rel, "..") {
		return "", fmt.Errorf("%w: %s escapes upload root", ErrInvalidObjectURL, rawURL)
	}

	return filePath, nil
}
