package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FileStore keeps each key in its own <key>.json file.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed KV rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

// Get implements KV.
func (fs *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading %s: %v", ErrStorage, key, err)
	}
	return data, true, nil
}

// Set implements KV. The file is replaced atomically.
func (fs *FileStore) Set(key string, value []byte) error {
	target := fs.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorage, key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrStorage, key, err)
	}
	return nil
}
