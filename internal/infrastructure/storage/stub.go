package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	videoapp "github.com/pinehillfarm/backend/internal/application/video"
)

// Ensure StubObjectStorage implements the video pipeline's storage port
var _ videoapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage is an in-memory object store for development and tests
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewStubObjectStorage creates an empty stub store. baseURL is prepended to
// keys when building download URLs.
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "stub://storage"
	}
	return &StubObjectStorage{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Upload stores data under the key
func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = append([]byte(nil), data...)
	return nil
}

// UploadFile reads a local file and stores it under the key
func (s *StubObjectStorage) UploadFile(ctx context.Context, storageKey, localPath, contentType string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read file for upload: %w", err)
	}
	return s.Upload(ctx, storageKey, data, contentType)
}

// GenerateDownloadURL returns a deterministic fake URL for the key
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, fmt.Errorf("object not found: %s", storageKey)
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return s.baseURL + "/" + storageKey, time.Now().Add(expiresIn), nil
}

// DeleteObject removes the key
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// Get returns the stored bytes, for test assertions
func (s *StubObjectStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}

// Len returns the number of stored objects
func (s *StubObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
