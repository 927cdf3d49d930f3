package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/devnews/internal/hn"
)

type recorder struct {
	missing map[int]bool
	calls   [][]int
}

func (r *recorder) FetchItems(_ context.Context, ids []int) []hn.Item {
	r.calls = append(r.calls, ids)
	var out []hn.Item
	for _, id := range ids {
		if !r.missing[id] {
			out = append(out, hn.Item{ID: id})
		}
	}
	return out
}

func ids(items []hn.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestEmptyBookmarksSkipFetch(t *testing.T) {
	r := &recorder{}
	items := Bookmarks(context.Background(), r, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Empty(t, r.calls)
}

func TestBookmarksDropMissing(t *testing.T) {
	r := &recorder{missing: map[int]bool{9: true}}
	items := Bookmarks(context.Background(), r, []int{5, 9, 14})
	assert.Equal(t, []int{5, 14}, ids(items))
}

func TestHistoryResolvesFiftyMostRecent(t *testing.T) {
	history := make([]int, 100)
	for i := range history {
		history[i] = 1000 - i
	}
	r := &recorder{}

	items := History(context.Background(), r, history, 0)
	require.Len(t, r.calls, 1)
	assert.Len(t, r.calls[0], HistoryLimit)
	assert.Equal(t, 1000, items[0].ID)
	assert.Equal(t, 951, items[49].ID)
}

func TestHistoryCustomLimit(t *testing.T) {
	r := &recorder{missing: map[int]bool{}}
	items := History(context.Background(), r, []int{3, 2, 1}, 2)
	assert.Equal(t, []int{3, 2}, ids(items))
}

func TestAllMissingIsEmptyNotNil(t *testing.T) {
	r := &recorder{missing: map[int]bool{1: true}}
	items := Resolve(context.Background(), r, []int{1})
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
