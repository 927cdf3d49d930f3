package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one fresh instance of every KV implementation.
func backends(t *testing.T) map[string]KV {
	t.Helper()
	db, err := OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return map[string]KV{
		"sqlite": db,
		"json":   fs,
		"memory": NewMemory(),
	}
}

func TestIDsRoundTripEveryBackend(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []int{}, LoadIDs(kv, BookmarksKey))

			require.NoError(t, SaveIDs(kv, BookmarksKey, []int{5, 9, 14}))
			assert.Equal(t, []int{5, 9, 14}, LoadIDs(kv, BookmarksKey))

			require.NoError(t, SaveIDs(kv, BookmarksKey, []int{14}))
			assert.Equal(t, []int{14}, LoadIDs(kv, BookmarksKey))
			assert.Equal(t, []int{}, LoadIDs(kv, HistoryKey))
		})
	}
}

func TestLoadIDsFallsBackOnGarbage(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(HistoryKey, []byte("{not json")))
			assert.Equal(t, []int{}, LoadIDs(kv, HistoryKey))

			require.NoError(t, kv.Set(HistoryKey, []byte("null")))
			assert.Equal(t, []int{}, LoadIDs(kv, HistoryKey))
		})
	}
}

type brokenKV struct{}

func (brokenKV) Get(string) ([]byte, bool, error) { return nil, false, ErrStorage }
func (brokenKV) Set(string, []byte) error        { return ErrStorage }

func TestBrokenBackendDegradesToEmpty(t *testing.T) {
	assert.Equal(t, []int{}, LoadIDs(brokenKV{}, BookmarksKey))
	err := SaveIDs(brokenKV{}, BookmarksKey, []int{1})
	assert.True(t, errors.Is(err, ErrStorage))
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := OpenDB(dir)
	require.NoError(t, err)
	require.NoError(t, SaveIDs(db, HistoryKey, []int{3, 2, 1}))
	require.NoError(t, db.Close())

	db, err = OpenDB(dir)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, []int{3, 2, 1}, LoadIDs(db, HistoryKey))
	assert.Equal(t, filepath.Join(dir, "devnews.db"), db.Path())
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set("../escape", []byte("[]")))
	_, err = os.Stat(filepath.Join(dir, "___escape.json"))
	assert.NoError(t, err)
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	kv, closer, err := Open(BackendJSON, dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, kv)
	assert.NoError(t, closer.Close())

	kv, closer, err = Open(BackendSQLite, dir)
	require.NoError(t, err)
	assert.IsType(t, &DB{}, kv)
	assert.NoError(t, closer.Close())

	_, _, err = Open("redis", dir)
	assert.Error(t, err)
}

func TestLoadConfigFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.json")
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, BackendSQLite, cfg.Storage)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadConfigFileNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"page_size":-3,"storage":"redis","default_feed":"ask"}`), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, BackendSQLite, cfg.Storage)
	assert.Equal(t, "ask", cfg.DefaultFeed)
	assert.Equal(t, 50, cfg.HistoryViewLimit)
}

func TestLoadConfigFileGarbageFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{{{`), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().PageSize, cfg.PageSize)
}
