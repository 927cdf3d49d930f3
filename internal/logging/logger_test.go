package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersAreNoopsBeforeInit(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, func() {
		Debug("x")
		Info("x")
		Warn("x", "k", 1)
		Error("x")
	})
	assert.NotNil(t, WithPrefix("hn"))
}

func TestSetOutputCapturesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.DebugLevel)
	t.Cleanup(func() { Logger = nil })

	Warn("item dropped", "id", 42)
	assert.Contains(t, buf.String(), "item dropped")
	assert.Contains(t, buf.String(), "id=42")
}

func TestInitCreatesDatedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir, log.InfoLevel))
	Close()
	t.Cleanup(func() { Logger = nil })

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "devnews-")
}
