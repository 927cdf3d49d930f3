package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/devnews/internal/hn"
)

type fakeSource struct {
	lists   map[hn.Feed][]int
	missing map[int]bool
	listErr error
	fetched [][]int
}

func (f *fakeSource) ListIDs(_ context.Context, feed hn.Feed) ([]int, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[feed], nil
}

func (f *fakeSource) FetchItems(_ context.Context, ids []int) []hn.Item {
	f.fetched = append(f.fetched, ids)
	var items []hn.Item
	for _, id := range ids {
		if f.missing[id] {
			continue
		}
		items = append(items, hn.Item{ID: id, Title: fmt.Sprintf("story %d", id)})
	}
	return items
}

func seq(from, to int) []int {
	ids := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, i)
	}
	return ids
}

func itemIDs(items []hn.Item) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestPagingThroughFortyFive(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 45)}}
	s := New(20)

	require.NoError(t, s.Activate(ctx, src, hn.Top))
	assert.Len(t, s.Items(), 20)
	assert.True(t, s.HasMore())
	assert.Equal(t, Idle, s.State())

	more, err := s.RevealNextPage(ctx, src)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, seq(21, 40), itemIDs(s.Items()[20:]))

	more, err = s.RevealNextPage(ctx, src)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, seq(1, 45), itemIDs(s.Items()))
	assert.Equal(t, Exhausted, s.State())

	// Nothing left: no fetch, cursor unchanged.
	more, err = s.RevealNextPage(ctx, src)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Len(t, src.fetched, 3)
	assert.Equal(t, 45, s.Revealed())
}

func TestFailedItemsDoNotHoldBackCursor(t *testing.T) {
	ctx := context.Background()
	ids := seq(1, 30)
	src := &fakeSource{
		lists:   map[hn.Feed][]int{hn.New: ids},
		missing: map[int]bool{3: true, 17: true},
	}
	s := New(20)

	require.NoError(t, s.Activate(ctx, src, hn.New))
	assert.Len(t, s.Items(), 18)
	assert.Equal(t, 20, s.Revealed())
	assert.True(t, s.HasMore())
	assert.NotContains(t, itemIDs(s.Items()), 3)
	assert.NotContains(t, itemIDs(s.Items()), 17)
}

func TestCursorNeverRevisits(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Best: seq(1, 95)}}
	s := New(10)
	require.NoError(t, s.Activate(ctx, src, hn.Best))
	for s.HasMore() {
		_, err := s.RevealNextPage(ctx, src)
		require.NoError(t, err)
	}

	seen := map[int]bool{}
	for _, batch := range src.fetched {
		for _, id := range batch {
			assert.False(t, seen[id], "id %d fetched twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 95)
}

func TestEmptyListIsExhausted(t *testing.T) {
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Job: {}}}
	s := New(20)

	require.NoError(t, s.Activate(context.Background(), src, hn.Job))
	assert.Empty(t, s.Items())
	assert.False(t, s.HasMore())
	assert.Equal(t, Exhausted, s.State())
	assert.Empty(t, src.fetched)
}

func TestListFailureLeavesSessionIdleAndEmpty(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 5)}}
	s := New(20)
	require.NoError(t, s.Activate(ctx, src, hn.Top))

	src.listErr = fmt.Errorf("%w: boom", hn.ErrNetwork)
	err := s.Activate(ctx, src, hn.Top)
	assert.True(t, errors.Is(err, hn.ErrNetwork))
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.Items())
	assert.Zero(t, s.Total())
}

func TestBeginWhileBusy(t *testing.T) {
	s := New(20)
	_, err := s.Begin(hn.Top)
	require.NoError(t, err)

	_, err = s.Begin(hn.Ask)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.NextPage()
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, hn.Top, s.Feed())
}

func TestReactivationStartsOver(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 45)}}
	s := New(20)
	require.NoError(t, s.Activate(ctx, src, hn.Top))
	_, err := s.RevealNextPage(ctx, src)
	require.NoError(t, err)
	require.Len(t, s.Items(), 40)

	require.NoError(t, s.Activate(ctx, src, hn.Top))
	assert.Equal(t, seq(1, 20), itemIDs(s.Items()))
}

func TestAbandonDiscardsLateResults(t *testing.T) {
	s := New(20)
	tk, err := s.Begin(hn.Top)
	require.NoError(t, err)

	s.Abandon()
	assert.False(t, s.Busy())

	_, ok := s.SetIDs(tk, seq(1, 5))
	assert.False(t, ok)
	assert.False(t, s.Fail(tk))
	assert.Zero(t, s.Total())
}

func TestStalePageIsNotCommitted(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 45), hn.Show: seq(100, 110)}}
	s := New(20)
	require.NoError(t, s.Activate(ctx, src, hn.Top))

	old, err := s.NextPage()
	require.NoError(t, err)
	s.Abandon()
	require.NoError(t, s.Activate(ctx, src, hn.Show))

	assert.False(t, s.Commit(old, old.Resolve(ctx, src)))
	assert.Equal(t, seq(100, 110), itemIDs(s.Items()))
}

func TestNonPositivePageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, New(0).PageSize())
	assert.Equal(t, DefaultPageSize, New(-4).PageSize())
}
