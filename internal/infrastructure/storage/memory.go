package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

// MemoryStore keeps objects in process memory. Used when no bucket is configured.
type MemoryStore struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{baseURL: baseURL, objects: map[string][]byte{}}
}

func (s *MemoryStore) Upload(_ context.Context, prefix, owner, filename, contentType string, r io.Reader) (Object, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Object{}, errs.StorageFailed("upload", err)
	}
	path := helpers.ObjectPath(prefix, owner, filename)
	s.mu.Lock()
	s.objects[path] = b
	s.mu.Unlock()
	return Object{Path: path, URL: s.baseURL + "/" + path, ContentType: contentType}, nil
}

func (s *MemoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	delete(s.objects, path)
	s.mu.Unlock()
	return nil
}

// Open returns a reader over a stored object.
func (s *MemoryStore) Open(path string) (io.Reader, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[path]
	if !ok {
		return nil, false
	}
	return bytes.NewReader(b), true
}

var _ Store = (*MemoryStore)(nil)
