package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "vessel-orders/pkg/errors"
)

// PublicPrefix is the URL path under which saved files are served.
const PublicPrefix = "/uploads/"

type FileStorageInterface interface {
	// Save stores file and returns its public URL.
	Save(file io.Reader, originalFileName string, prefix string) (fileURL string, err error)
	Delete(fileURL string) error
}

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)
	relDir := filepath.Join(prefix, now.Format("2006/01/02"))

	if err := os.MkdirAll(filepath.Join(s.basePath, relDir), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.basePath, relDir, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}
	return PublicPrefix + filepath.ToSlash(filepath.Join(relDir, uniqueFileName)), nil
}

// Delete removes a file by its public URL. A missing file is not an error.
func (s *LocalFileStorage) Delete(fileURL string) error {
	rel, err := s.resolve(fileURL)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.basePath, rel)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve maps a public URL to a path relative to basePath, refusing anything
// that would escape it.
func (s *LocalFileStorage) resolve(fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, PublicPrefix) {
		return "", apperrors.NewInvalidInputError("not an uploaded file: %s", fileURL)
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(fileURL, PublicPrefix)))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", apperrors.NewInvalidInputError("not an uploaded file: %s", fileURL)
	}
	return rel, nil
}
