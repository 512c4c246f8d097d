package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var errUnreadable = errors.New("unreadable store file")

// FileStore keeps every key in one JSON object file, mapping key to the
// stored string. Each Save rewrites the file through a temp file and rename.
// A file that does not parse fails Load; Save moves it to <path>.corrupt and
// starts over so the application can keep writing.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	v, ok := entries[key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (s *FileStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.read()
	if errors.Is(err, errUnreadable) {
		if err := os.Rename(s.path, s.path+".corrupt"); err != nil {
			return fmt.Errorf("move aside %s: %w", s.path, err)
		}
		entries, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	entries[key] = string(value)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w %s: %v", errUnreadable, s.path, err)
	}
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}
