package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists all keys in a single JSON document on local disk.
// Every write rewrites the document through a temp file and rename, so a
// crash leaves either the old or the new document, never a mix.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewFileStore opens (or lazily creates) the document at path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: empty file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}

	s := &FileStore{path: path, data: map[string]json.RawMessage{}}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("storage: decode %s: %w", path, err)
		}
	}
	return s, nil
}

// Path returns the location of the backing document.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	return s.PutMany(ctx, map[string][]byte{key: value})
}

func (s *FileStore) PutMany(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.data)+len(entries))
	for k, v := range s.data {
		next[k] = v
	}
	for k, v := range entries {
		if !json.Valid(v) {
			return fmt.Errorf("storage: value for %q is not valid JSON", k)
		}
		next[k] = json.RawMessage(clone(v))
	}

	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.data))
	for k, v := range s.data {
		next[k] = v
	}
	for _, k := range keys {
		delete(next, k)
	}

	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) flush(data map[string]json.RawMessage) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: replace %s: %w", s.path, err)
	}
	return nil
}
