package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/folioworks/folio/pkg/folio"
)

// Store is a filesystem implementation of the folio.MediaStore interface
type Store struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem store
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // Optional URL prefix for download/upload URLs
}

// New creates a new filesystem media store
func New(config Config) (folio.MediaStore, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Store{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimRight(config.URLPrefix, "/"),
	}, nil
}

// filePath resolves an object key inside the base directory, rejecting
// keys that would escape it.
func (s *Store) filePath(objectKey string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(objectKey))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object key: %s", objectKey)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Upload writes the content read from reader to a file under the base directory
func (s *Store) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	path, err := s.filePath(objectKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download opens the stored file for reading
func (s *Store) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	path, err := s.filePath(objectKey)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New("object not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes the stored file and any directories it leaves empty
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	path, err := s.filePath(objectKey)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.New("object not found")
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.cleanupEmptyDirectories(filepath.Dir(path))

	return nil
}

// GetUploadURL returns a URL for uploading content
func (s *Store) GetUploadURL(ctx context.Context, objectKey string) (string, error) {
	if s.urlPrefix == "" {
		return "", errors.New("direct upload required for filesystem store")
	}
	return fmt.Sprintf("%s/upload/%s", s.urlPrefix, objectKey), nil
}

// GetDownloadURL returns a URL for downloading content
func (s *Store) GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error) {
	if s.urlPrefix == "" {
		return "", errors.New("direct download required for filesystem store")
	}

	if downloadFilename != "" {
		return fmt.Sprintf("%s/download/%s?filename=%s", s.urlPrefix, objectKey, url.QueryEscape(downloadFilename)), nil
	}
	return fmt.Sprintf("%s/download/%s", s.urlPrefix, objectKey), nil
}

// GetMeta retrieves metadata for a stored file
func (s *Store) GetMeta(ctx context.Context, objectKey string) (*folio.StoreObjectMeta, error) {
	path, err := s.filePath(objectKey)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.New("object not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	// Detect content type from the first bytes
	contentType := "application/octet-stream"
	if file, err := os.Open(path); err == nil {
		defer file.Close()
		buffer := make([]byte, 512)
		if n, err := file.Read(buffer); err == nil {
			contentType = http.DetectContentType(buffer[:n])
		}
	}

	return &folio.StoreObjectMeta{
		Key:         objectKey,
		Size:        info.Size(),
		ContentType: contentType,
		UpdatedAt:   info.ModTime(),
	}, nil
}

// cleanupEmptyDirectories recursively removes empty directories up to baseDir
func (s *Store) cleanupEmptyDirectories(dir string) {
	if dir == s.baseDir {
		return
	}

	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		if os.Remove(dir) == nil {
			s.cleanupEmptyDirectories(filepath.Dir(dir))
		}
	}
}
