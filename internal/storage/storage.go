// Package storage persists the version manifest consulted before every
// deployment operation. The registry only ever sees byte content in and
// byte content out; commit and branch mechanics belong to whichever
// backend publishes the snapshot.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// ErrDocNotExist signals that no manifest has been published yet. A
// caller starting a fresh deployment treats this as an empty registry.
var ErrDocNotExist = errors.New("version manifest does not exist")

// Store reads and publishes the persisted registry document. The
// message passed to Write describes the change for backends that record
// history; backends without history ignore it.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte, message string) error
}

// FileStore keeps the manifest as a file on an afero filesystem.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store rooted at dir, with the manifest living
// under the optional prefix subdirectory.
func NewFileStore(fs afero.Fs, dir, prefix, name string) *FileStore {
	return &FileStore{fs: fs, path: filepath.Join(dir, prefix, name)}
}

// Path returns the manifest location.
func (s *FileStore) Path() string { return s.path }

// Read returns the current manifest bytes, or ErrDocNotExist.
func (s *FileStore) Read(_ context.Context) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocNotExist, s.path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", s.path, err)
	}
	return data, nil
}

// Write publishes new manifest content, creating parent directories as
// needed. The message is ignored; plain files keep no history.
func (s *FileStore) Write(_ context.Context, data []byte, _ string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", s.path, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests. It records the messages
// passed to Write so tests can assert on commit descriptions.
type MemStore struct {
	mu       sync.Mutex
	data     []byte
	exists   bool
	messages []string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

// Seed installs initial manifest content.
func (s *MemStore) Seed(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.exists = true
}

func (s *MemStore) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.exists {
		return nil, ErrDocNotExist
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemStore) Write(_ context.Context, data []byte, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.exists = true
	s.messages = append(s.messages, message)
	return nil
}

// Messages returns every message passed to Write, in order.
func (s *MemStore) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}
