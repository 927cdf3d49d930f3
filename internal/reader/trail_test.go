package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailBackForward(t *testing.T) {
	a, b, c := &Document{Title: "a"}, &Document{Title: "b"}, &Document{Title: "c"}
	tr := NewTrail()
	assert.Nil(t, tr.Current())
	_, ok := tr.Back()
	assert.False(t, ok)

	tr.Push(a)
	tr.Push(b)
	tr.Push(c)
	assert.Same(t, c, tr.Current())

	doc, ok := tr.Back()
	require.True(t, ok)
	assert.Same(t, b, doc)
	doc, ok = tr.Back()
	require.True(t, ok)
	assert.Same(t, a, doc)
	_, ok = tr.Back()
	assert.False(t, ok)

	doc, ok = tr.Forward()
	require.True(t, ok)
	assert.Same(t, b, doc)
}

func TestTrailPushTruncatesForward(t *testing.T) {
	a, b, c := &Document{Title: "a"}, &Document{Title: "b"}, &Document{Title: "c"}
	tr := NewTrail()
	tr.Push(a)
	tr.Push(b)
	tr.Back()
	tr.Push(c)

	assert.Equal(t, 2, tr.Len())
	assert.Same(t, c, tr.Current())
	_, ok := tr.Forward()
	assert.False(t, ok)

	tr.Clear()
	assert.Zero(t, tr.Len())
	assert.Nil(t, tr.Current())
}
