package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "etut/internal/platform/errors"
)

// FileStore keeps one file per key under <data>/.etut.
type FileStore struct {
	dir string
}

func NewFileStore(dataPath string) *FileStore {
	return &FileStore{dir: filepath.Join(dataPath, ".etut")}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read key %s: %w", key, err)
	}
	return raw, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}
