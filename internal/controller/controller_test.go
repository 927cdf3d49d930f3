package controller

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/personal"
	"github.com/vidyasagar/devnews/internal/present"
	"github.com/vidyasagar/devnews/internal/session"
	"github.com/vidyasagar/devnews/internal/storage"
)

type fakeSource struct {
	mu      sync.Mutex
	lists   map[hn.Feed][]int
	missing map[int]bool
	failing map[hn.Feed]bool
	batches int
}

func (f *fakeSource) ListIDs(_ context.Context, feed hn.Feed) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[feed] {
		return nil, fmt.Errorf("%w: %s down", hn.ErrNetwork, feed)
	}
	return f.lists[feed], nil
}

func (f *fakeSource) FetchItems(_ context.Context, ids []int) []hn.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches++
	var out []hn.Item
	for _, id := range ids {
		if f.missing[id] {
			continue
		}
		out = append(out, hn.Item{ID: id, Title: "story " + strconv.Itoa(id), By: "user" + strconv.Itoa(id)})
	}
	return out
}

func (f *fakeSource) OpenURL(it hn.Item) string {
	if it.URL != "" {
		return it.URL
	}
	return f.DiscussionURL(it.ID)
}

func (f *fakeSource) DiscussionURL(id int) string {
	return "https://news.ycombinator.com/item?id=" + strconv.Itoa(id)
}

func seq(from, to int) []int {
	ids := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, i)
	}
	return ids
}

func cardIDs(p present.Page) []int {
	ids := make([]int, len(p.Cards))
	for i, c := range p.Cards {
		ids[i] = c.ID
	}
	return ids
}

var clock = time.Date(2025, 3, 4, 14, 7, 0, 0, time.UTC)

func newController(t *testing.T, src *fakeSource) (*Controller, storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	c := New(src, personal.Load(kv), Options{PageSize: 20, Now: func() time.Time { return clock }})
	return c, kv
}

func TestActivateLoadsFirstPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 45)}}
	c, _ := newController(t, src)

	task, err := c.ActivateFeed(hn.Top)
	require.NoError(t, err)
	assert.True(t, c.Busy())
	assert.True(t, c.Page().Loading)

	u := Drive(ctx, c, task)
	assert.False(t, u.Stale)
	assert.Equal(t, seq(1, 20), cardIDs(u.Page))
	assert.True(t, u.Page.CanLoadMore)
	assert.Equal(t, "14:07", u.Page.UpdatedLabel())
	assert.Equal(t, "🔥 Top Stories", u.Page.Title)

	task, err = c.LoadMore()
	require.NoError(t, err)
	u = Drive(ctx, c, task)
	assert.Len(t, u.Page.Cards, 40)

	task, err = c.LoadMore()
	require.NoError(t, err)
	u = Drive(ctx, c, task)
	assert.Len(t, u.Page.Cards, 45)
	assert.False(t, u.Page.CanLoadMore)

	task, err = c.LoadMore()
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestPartialPage(t *testing.T) {
	src := &fakeSource{
		lists:   map[hn.Feed][]int{hn.New: seq(1, 45)},
		missing: map[int]bool{3: true, 17: true},
	}
	c, _ := newController(t, src)
	task, err := c.ActivateFeed(hn.New)
	require.NoError(t, err)

	u := Drive(context.Background(), c, task)
	assert.Equal(t, 18, u.Page.Count)
	assert.True(t, u.Page.CanLoadMore)
}

func TestEmptyFeed(t *testing.T) {
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Job: {}}}
	c, _ := newController(t, src)
	task, err := c.ActivateFeed(hn.Job)
	require.NoError(t, err)

	u := Drive(context.Background(), c, task)
	assert.True(t, u.Page.Empty)
	assert.False(t, u.Page.CanLoadMore)
	assert.Zero(t, src.batches)
}

func TestListFailureNotifies(t *testing.T) {
	src := &fakeSource{failing: map[hn.Feed]bool{hn.Top: true}}
	c, _ := newController(t, src)
	task, err := c.ActivateFeed(hn.Top)
	require.NoError(t, err)

	u := Drive(context.Background(), c, task)
	require.NotNil(t, u.Notice)
	assert.Equal(t, Failure, u.Notice.Kind)
	assert.Equal(t, "Failed to load stories", u.Notice.Text)
	assert.True(t, u.Page.Empty)
	assert.False(t, c.Busy())
	assert.True(t, u.Page.UpdatedAt.IsZero())
}

func TestActivateWhileLoadingIsRejected(t *testing.T) {
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 5)}}
	c, _ := newController(t, src)
	_, err := c.ActivateFeed(hn.Top)
	require.NoError(t, err)

	_, err = c.ActivateFeed(hn.Best)
	assert.ErrorIs(t, err, session.ErrBusy)
	_, err = c.Refresh()
	assert.ErrorIs(t, err, session.ErrBusy)
	assert.Equal(t, hn.Top, c.Feed())
}

func TestUnknownFeed(t *testing.T) {
	c, _ := newController(t, &fakeSource{})
	_, err := c.ActivateFeed(hn.Feed("polls"))
	assert.ErrorIs(t, err, ErrUnknownFeed)
}

func TestViewSwitchDiscardsLateFeedResult(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 45)}}
	c, kv := newController(t, src)
	require.NoError(t, storage.SaveIDs(kv, storage.BookmarksKey, []int{7}))
	c.me = personal.Load(kv)

	feedTask, err := c.ActivateFeed(hn.Top)
	require.NoError(t, err)
	late := feedTask.Run(ctx)

	u := Drive(ctx, c, c.ShowBookmarks())
	require.Equal(t, []int{7}, cardIDs(u.Page))

	u = c.Apply(late)
	assert.True(t, u.Stale)
	assert.Nil(t, u.Next)
	assert.Equal(t, present.BookmarksView, u.Page.View)
	assert.Equal(t, []int{7}, cardIDs(u.Page))
}

func TestFeedSwitchDiscardsLateCollection(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Ask: seq(1, 3)}}
	c, _ := newController(t, src)
	c.me.RecordHistory(99)

	late := c.ShowHistory().Run(ctx)
	task, err := c.ActivateFeed(hn.Ask)
	require.NoError(t, err)
	Drive(ctx, c, task)

	u := c.Apply(late)
	assert.True(t, u.Stale)
	assert.Equal(t, present.FeedView, u.Page.View)
	assert.Equal(t, seq(1, 3), cardIDs(u.Page))
}

func TestBookmarksView(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{missing: map[int]bool{9: true}}
	c, kv := newController(t, src)

	u := Drive(ctx, c, c.ShowBookmarks())
	assert.True(t, u.Page.Empty)
	assert.Zero(t, src.batches)

	require.NoError(t, storage.SaveIDs(kv, storage.BookmarksKey, []int{5, 9, 14}))
	c.me = personal.Load(kv)
	u = Drive(ctx, c, c.ShowBookmarks())
	assert.Equal(t, []int{5, 14}, cardIDs(u.Page))
	assert.False(t, u.Page.CanLoadMore)
	assert.Equal(t, 3, u.Page.BookmarkCount)
	for _, card := range u.Page.Cards {
		assert.True(t, card.Bookmarked)
	}

	task, err := c.LoadMore()
	assert.NoError(t, err)
	assert.Nil(t, task)
}

func TestToggleInBookmarksViewReloads(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{}
	c, kv := newController(t, src)
	require.NoError(t, storage.SaveIDs(kv, storage.BookmarksKey, []int{5, 9, 14}))
	c.me = personal.Load(kv)
	Drive(ctx, c, c.ShowBookmarks())

	u := c.ToggleBookmark(9)
	require.NotNil(t, u.Notice)
	assert.Equal(t, "Removed from bookmarks", u.Notice.Text)
	require.NotNil(t, u.Next)

	u = Drive(ctx, c, u.Next)
	assert.Equal(t, []int{5, 14}, cardIDs(u.Page))
	assert.Equal(t, 2, u.Page.BookmarkCount)
	assert.Equal(t, []int{5, 14}, storage.LoadIDs(kv, storage.BookmarksKey))
}

func TestToggleInFeedViewOnlyRedraws(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 3)}}
	c, _ := newController(t, src)
	task, err := c.ActivateFeed(hn.Top)
	require.NoError(t, err)
	Drive(ctx, c, task)
	batches := src.batches

	u := c.ToggleBookmark(2)
	assert.Nil(t, u.Next)
	assert.Equal(t, "Added to bookmarks", u.Notice.Text)
	assert.Equal(t, Success, u.Notice.Kind)
	assert.True(t, u.Page.Cards[1].Bookmarked)
	assert.Equal(t, 1, u.Page.BookmarkCount)
	assert.Equal(t, batches, src.batches)
}

func TestOpenRecordsHistory(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{}
	c, kv := newController(t, src)

	target, u := c.Open(hn.Item{ID: 3, URL: "https://example.com"})
	assert.Equal(t, "https://example.com", target)
	assert.Nil(t, u.Next)

	target, _ = c.Open(hn.Item{ID: 4})
	assert.Equal(t, "https://news.ycombinator.com/item?id=4", target)
	assert.Equal(t, []int{4, 3}, storage.LoadIDs(kv, storage.HistoryKey))

	Drive(ctx, c, c.ShowHistory())
	_, u = c.Open(hn.Item{ID: 3})
	require.NotNil(t, u.Next)
	u = Drive(ctx, c, u.Next)
	assert.Equal(t, []int{3, 4}, cardIDs(u.Page))
}

func TestHistoryViewShowsFifty(t *testing.T) {
	src := &fakeSource{}
	c, _ := newController(t, src)
	for id := 1; id <= 80; id++ {
		c.me.RecordHistory(id)
	}

	u := Drive(context.Background(), c, c.ShowHistory())
	require.Len(t, u.Page.Cards, 50)
	assert.Equal(t, 80, u.Page.Cards[0].ID)
	assert.Equal(t, "📜 History", u.Page.Title)
}

func TestQueryFiltersEveryView(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 12)}}
	c, _ := newController(t, src)
	task, err := c.ActivateFeed(hn.Top)
	require.NoError(t, err)
	Drive(ctx, c, task)

	u := c.SetQuery("  STORY 1")
	assert.Equal(t, []int{1, 10, 11, 12}, cardIDs(u.Page))

	c.me.ToggleBookmark(2)
	c.me.ToggleBookmark(11)
	u = Drive(ctx, c, c.ShowBookmarks())
	assert.Equal(t, []int{11}, cardIDs(u.Page))

	u = c.SetQuery("")
	assert.Equal(t, []int{2, 11}, cardIDs(u.Page))
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Show: seq(1, 30)}}
	c, _ := newController(t, src)
	task, err := c.ActivateFeed(hn.Show)
	require.NoError(t, err)
	Drive(ctx, c, task)
	task, err = c.LoadMore()
	require.NoError(t, err)
	Drive(ctx, c, task)
	require.Len(t, c.Page().Cards, 30)

	task, err = c.Refresh()
	require.NoError(t, err)
	u := Drive(ctx, c, task)
	assert.Len(t, u.Page.Cards, 20)
	require.NotNil(t, u.Notice)
	assert.Equal(t, "Feed refreshed", u.Notice.Text)

	Drive(ctx, c, c.ShowHistory())
	task, err = c.Refresh()
	require.NoError(t, err)
	u = Drive(ctx, c, task)
	assert.Equal(t, present.HistoryView, u.Page.View)
	require.NotNil(t, u.Notice)
	assert.Equal(t, "Feed refreshed", u.Notice.Text)
}

func TestInterruptedRefreshDoesNotNotifyLater(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{lists: map[hn.Feed][]int{hn.Top: seq(1, 5), hn.New: seq(6, 9)}}
	c, _ := newController(t, src)
	task, err := c.ActivateFeed(hn.Top)
	require.NoError(t, err)
	Drive(ctx, c, task)

	// The refresh never lands: the user leaves for bookmarks first.
	_, err = c.Refresh()
	require.NoError(t, err)
	Drive(ctx, c, c.ShowBookmarks())

	task, err = c.ActivateFeed(hn.New)
	require.NoError(t, err)
	u := Drive(ctx, c, task)
	assert.Equal(t, []int{6, 7, 8, 9}, cardIDs(u.Page))
	assert.Nil(t, u.Notice)
}

func TestCollectionReloadKeepsItemsUntilDone(t *testing.T) {
	ctx := context.Background()
	c, kv := newController(t, &fakeSource{})
	require.NoError(t, storage.SaveIDs(kv, storage.BookmarksKey, []int{5, 9, 14}))
	c.me = personal.Load(kv)
	Drive(ctx, c, c.ShowBookmarks())

	u := c.ToggleBookmark(9)
	assert.Equal(t, []int{5, 9, 14}, cardIDs(u.Page))
	assert.True(t, u.Page.Loading)

	u = Drive(ctx, c, u.Next)
	assert.Equal(t, []int{5, 14}, cardIDs(u.Page))
	assert.False(t, u.Page.Loading)

	// Switching views starts from an empty list.
	c.me.RecordHistory(1)
	task := c.ShowHistory()
	assert.Empty(t, c.Page().Cards)
	u = Drive(ctx, c, task)
	assert.Equal(t, []int{1}, cardIDs(u.Page))
}

func TestClearHistoryInHistoryView(t *testing.T) {
	ctx := context.Background()
	c, kv := newController(t, &fakeSource{})
	c.me.RecordHistory(1)
	Drive(ctx, c, c.ShowHistory())

	u := c.ClearHistory()
	assert.True(t, u.Page.Empty)
	assert.Equal(t, []int{}, storage.LoadIDs(kv, storage.HistoryKey))
}
