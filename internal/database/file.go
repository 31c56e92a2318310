package database

import (
	"context"
	"os"
	"path/filepath"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

type fileStore struct {
	basePath string
}

// NewFileStore returns a Store writing each key as a JSON file under
// basePath. This is the closest equivalent of the browser local-storage
// slot the service was modeled on.
func NewFileStore(basePath string) (Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	return &fileStore{basePath: basePath}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

func (s *fileStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *fileStore) Save(_ context.Context, key string, value []byte) error {
	// write-then-rename keeps the slot whole if the process dies mid-write
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
