// Package files stores uploaded images on the local filesystem.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"locafest/internal/core/apperror"
)

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Store keeps uploads under a single base directory. Stored paths are always
// relative to that directory, so a row never leaks an absolute host path.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the upload under a random name, keeping only the extension from
// the original filename. Returns the relative path to persist.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return "", apperror.NewValidation("unsupported image type")
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image. The path is confined to the base directory;
// anything trying to escape it is rejected.
func (s *Store) Remove(path string) error {
	clean := filepath.Clean(path)
	if clean == "" || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return apperror.NewValidation("invalid image path")
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// Open returns a stored image for serving.
func (s *Store) Open(path string) (*os.File, error) {
	clean := filepath.Clean(path)
	if clean == "" || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return nil, apperror.NewValidation("invalid image path")
	}
	f, err := os.Open(filepath.Join(s.baseDir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.NewNotFound("image", clean)
		}
		return nil, fmt.Errorf("open image file: %w", err)
	}
	return f, nil
}
