package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSON-backed key/value storage. Single file, human-readable, owner-only
// since it holds the saved password.

const FileName = "state.json"

type Store struct {
	mu   sync.Mutex
	path string
}

// New stores data in dir/state.json. The directory is created on first write.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	kv := map[string]string{}
	if err := json.Unmarshal(b, &kv); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return kv, nil
}

func (s *Store) save(kv map[string]string) error {
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := kv[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		// a corrupt file is replaced rather than blocking every write
		kv = map[string]string{}
	}
	kv[key] = value
	return s.save(kv)
}

func (s *Store) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		kv = map[string]string{}
	}
	for _, k := range keys {
		delete(kv, k)
	}
	return s.save(kv)
}

func (s *Store) Close() error { return nil }
