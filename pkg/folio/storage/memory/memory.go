package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/folioworks/folio/pkg/folio"
)

// Store is an in-memory implementation of the folio.MediaStore interface
type Store struct {
	mu       sync.RWMutex
	objects  map[string][]byte
	mimes    map[string]string
	modified map[string]time.Time
}

// New creates a new in-memory media store
func New() folio.MediaStore {
	return &Store{
		objects:  make(map[string][]byte),
		mimes:    make(map[string]string),
		modified: make(map[string]time.Time),
	}
}

// Upload stores the content read from reader under the object key
func (s *Store) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[objectKey] = data
	s.mimes[objectKey] = http.DetectContentType(data)
	s.modified[objectKey] = time.Now().UTC()
	return nil
}

// Download returns a reader over the stored content
func (s *Store) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.objects[objectKey]
	if !exists {
		return nil, errors.New("object not found")
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete deletes the stored content
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[objectKey]; !exists {
		return errors.New("object not found")
	}

	delete(s.objects, objectKey)
	delete(s.mimes, objectKey)
	delete(s.modified, objectKey)
	return nil
}

// GetUploadURL returns a URL for uploading content
// In-memory implementation doesn't use URLs
func (s *Store) GetUploadURL(ctx context.Context, objectKey string) (string, error) {
	return "", errors.New("direct upload required for memory store")
}

// GetDownloadURL returns a URL for downloading content
// In-memory implementation doesn't use URLs
func (s *Store) GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error) {
	return "", errors.New("direct download required for memory store")
}

// GetMeta retrieves metadata for an object in memory
func (s *Store) GetMeta(ctx context.Context, objectKey string) (*folio.StoreObjectMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.objects[objectKey]
	if !exists {
		return nil, errors.New("object not found")
	}

	return &folio.StoreObjectMeta{
		Key:         objectKey,
		Size:        int64(len(data)),
		ContentType: s.mimes[objectKey],
		UpdatedAt:   s.modified[objectKey],
	}, nil
}
