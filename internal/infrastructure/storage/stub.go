package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sistemaventa/backend/internal/application/gateway"
)

// Ensure StubStorage implements the gateway contract
var _ gateway.BlobStorage = (*StubStorage)(nil)

// StubStorage is an in-memory blob store for development and tests.
// Objects live in a map keyed the same way real backends key them.
type StubStorage struct {
	// BaseURL is the base URL for generated object URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubStorage creates a new StubStorage
func NewStubStorage() *StubStorage {
	return &StubStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the object content in memory and returns its URL
func (s *StubStorage) Upload(_ context.Context, content io.Reader, folder, filename string) (string, error) {
	if filename == "" {
		return "", errors.New("filename is required")
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	key := folder + "/" + publicID(filename)

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	return s.BaseURL + "/" + key, nil
}

// Remove deletes the object, reporting (false, nil) when it never existed
func (s *StubStorage) Remove(_ context.Context, folder, filename string) (bool, error) {
	if filename == "" {
		return false, errors.New("filename is required")
	}

	key := folder + "/" + publicID(filename)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return false, nil
	}
	delete(s.objects, key)
	return true, nil
}

// Object returns the stored content for a key, for test assertions
func (s *StubStorage) Object(folder, filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[folder+"/"+publicID(filename)]
	return data, ok
}

// Len reports how many objects are stored
func (s *StubStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
