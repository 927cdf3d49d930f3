// Package storage is the local key/value persistence layer: identifier
// lists stored as JSON under fixed keys, with sqlite, JSON-file and
// in-memory backends.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vidyasagar/devnews/internal/logging"
)

// Keys of the two persisted collections.
const (
	BookmarksKey = "hn-bookmarks"
	HistoryKey   = "hn-history"
)

// ErrStorage wraps every backend failure.
var ErrStorage = errors.New("storage error")

// KV is a synchronous key/value store. Get reports ok=false for a missing
// key without an error.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// LoadIDs reads an identifier list. Missing keys, backend failures and
// undecodable values all yield an empty list; failures are logged.
func LoadIDs(kv KV, key string) []int {
	data, ok, err := kv.Get(key)
	if err != nil {
		logging.Warn("storage read failed, using empty list", "key", key, "err", err)
		return []int{}
	}
	if !ok || len(data) == 0 {
		return []int{}
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		logging.Warn("stored list is not valid JSON, using empty list", "key", key, "err", err)
		return []int{}
	}
	if ids == nil {
		return []int{}
	}
	return ids
}

// SaveIDs writes an identifier list. The error is returned for callers
// that care; the personalization layer only logs it.
func SaveIDs(kv KV, key string, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrStorage, key, err)
	}
	if err := kv.Set(key, data); err != nil {
		logging.Error("storage write failed", "key", key, "err", err)
		return err
	}
	return nil
}

// Memory is an in-process KV. It backs tests and --storage=memory.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements KV.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements KV.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}
