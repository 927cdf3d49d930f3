// Package controller owns every piece of client state and is the only
// thing that mutates it. Frontends send intents and get back view models.
//
// Intents that need the network return a *Task. A task may run on any
// goroutine; its Result must be handed back to Apply on the goroutine that
// owns the Controller. Apply drops results issued before the latest view
// switch, so a slow load can never overwrite a newer view.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vidyasagar/devnews/internal/collection"
	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/logging"
	"github.com/vidyasagar/devnews/internal/personal"
	"github.com/vidyasagar/devnews/internal/present"
	"github.com/vidyasagar/devnews/internal/session"
)

// ErrUnknownFeed is returned for a feed outside the catalogue.
var ErrUnknownFeed = errors.New("unknown feed")

// Source is the content client as the controller uses it.
type Source interface {
	session.Source
	present.Links
}

// NoticeKind classifies a notification.
type NoticeKind int

const (
	Success NoticeKind = iota
	Info
	Failure
)

// Notice is a transient message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
}

const (
	textLoadFailed = "Failed to load stories"
	textRefreshed  = "Feed refreshed"
)

// Options configures a Controller.
type Options struct {
	PageSize     int
	HistoryLimit int
	Now          func() time.Time
}

// Task is deferred I/O issued by an intent.
type Task struct {
	epoch uint64
	name  string
	run   func(ctx context.Context) func(c *Controller) Update
}

// Name describes the task for logs.
func (t *Task) Name() string { return t.name }

// Run performs the task's I/O. It does not touch controller state.
func (t *Task) Run(ctx context.Context) Result {
	return Result{epoch: t.epoch, name: t.name, apply: t.run(ctx)}
}

// Result is the outcome of a Task, waiting to be applied.
type Result struct {
	epoch uint64
	name  string
	apply func(c *Controller) Update
}

// Update is what a frontend redraws from.
type Update struct {
	Page   present.Page
	Notice *Notice
	Next   *Task // follow-up work, e.g. the first page after the id list
	Stale  bool  // the result was superseded and ignored
}

// Controller is the single owner of session, personalization and view
// state.
type Controller struct {
	src          Source
	sess         *session.Session
	me           *personal.State
	builder      present.Builder
	now          func() time.Time
	historyLimit int
	log          *log.Logger

	epoch      uint64
	view       present.View
	feed       hn.Feed
	query      string
	items      []hn.Item // collection view contents
	collecting bool
	updatedAt  time.Time
}

// New creates a controller showing an empty feed view.
func New(src Source, me *personal.State, opts Options) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = collection.HistoryLimit
	}
	return &Controller{
		src:          src,
		sess:         session.New(opts.PageSize),
		me:           me,
		builder:      present.Builder{Links: src, Now: now},
		now:          now,
		historyLimit: opts.HistoryLimit,
		log:          logging.WithPrefix("controller"),
		feed:         hn.Top,
	}
}

// View returns the active view.
func (c *Controller) View() present.View { return c.view }

// Feed returns the feed last activated.
func (c *Controller) Feed() hn.Feed { return c.feed }

// Query returns the raw search query.
func (c *Controller) Query() string { return c.query }

// Busy reports whether a load for the active view is in flight.
func (c *Controller) Busy() bool {
	if c.view == present.FeedView {
		return c.sess.Busy()
	}
	return c.collecting
}

// IsBookmarked reports bookmark membership.
func (c *Controller) IsBookmarked(id int) bool { return c.me.IsBookmarked(id) }

// Page builds the view model of the current state.
func (c *Controller) Page() present.Page {
	in := present.Input{
		View:          c.view,
		Feed:          c.feed,
		Query:         c.query,
		Bookmarked:    c.me.IsBookmarked,
		BookmarkCount: c.me.BookmarkCount(),
		Loading:       c.Busy(),
		UpdatedAt:     c.updatedAt,
	}
	if c.view == present.FeedView {
		in.Items = c.sess.Items()
		in.CanLoadMore = c.sess.HasMore()
	} else {
		in.Items = c.items
	}
	return c.builder.Build(in)
}

// Apply folds a task result into the state.
func (c *Controller) Apply(r Result) Update {
	if r.epoch != c.epoch {
		c.log.Debug("discarding superseded result", "task", r.name, "epoch", r.epoch, "current", c.epoch)
		return Update{Page: c.Page(), Stale: true}
	}
	return r.apply(c)
}

func (c *Controller) task(name string, run func(ctx context.Context) func(c *Controller) Update) *Task {
	return &Task{epoch: c.epoch, name: name, run: run}
}

func (c *Controller) update(n *Notice) Update {
	return Update{Page: c.Page(), Notice: n}
}

// ActivateFeed switches to feed and starts loading it from scratch. It
// fails with session.ErrBusy while a feed load is in flight.
func (c *Controller) ActivateFeed(feed hn.Feed) (*Task, error) {
	return c.activate(feed, false)
}

// activate begins a feed load. refresh travels with the tasks so only the
// load it started can report "Feed refreshed".
func (c *Controller) activate(feed hn.Feed, refresh bool) (*Task, error) {
	if !feed.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, feed)
	}
	if c.view == present.FeedView && c.sess.Busy() {
		return nil, session.ErrBusy
	}

	t, err := c.sess.Begin(feed)
	if err != nil {
		return nil, err
	}
	c.epoch++
	c.view = present.FeedView
	c.feed = feed
	c.items = nil
	c.collecting = false

	src := c.src
	return c.task("list "+string(feed), func(ctx context.Context) func(*Controller) Update {
		ids, err := src.ListIDs(ctx, feed)
		return func(c *Controller) Update {
			if err != nil {
				return c.listFailed(t, err)
			}
			req, ok := c.sess.SetIDs(t, ids)
			if !ok {
				return Update{Page: c.Page(), Stale: true}
			}
			if req.Empty() {
				return c.feedLoaded(refresh)
			}
			u := c.update(nil)
			u.Next = c.pageTask(req, true, refresh)
			return u
		}
	}), nil
}

func (c *Controller) listFailed(t session.Ticket, err error) Update {
	if !c.sess.Fail(t) {
		return Update{Page: c.Page(), Stale: true}
	}
	c.log.Error("feed load failed", "feed", t.Feed, "err", err)
	return c.update(&Notice{Kind: Failure, Text: textLoadFailed})
}

// feedLoaded finishes an activation once its first page is in.
func (c *Controller) feedLoaded(refresh bool) Update {
	c.updatedAt = c.now()
	var n *Notice
	if refresh {
		n = &Notice{Kind: Success, Text: textRefreshed}
	}
	return c.update(n)
}

func (c *Controller) pageTask(req session.PageRequest, first, refresh bool) *Task {
	src := c.src
	name := fmt.Sprintf("page %d-%d", req.Start, req.End)
	return c.task(name, func(ctx context.Context) func(*Controller) Update {
		items := req.Resolve(ctx, src)
		return func(c *Controller) Update {
			if !c.sess.Commit(req, items) {
				return Update{Page: c.Page(), Stale: true}
			}
			if first {
				return c.feedLoaded(refresh)
			}
			return c.update(nil)
		}
	})
}

// LoadMore reveals the next page of the active feed. It returns a nil
// task when there is nothing to load or a collection view is active.
func (c *Controller) LoadMore() (*Task, error) {
	if c.view != present.FeedView {
		return nil, nil
	}
	req, err := c.sess.NextPage()
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, nil
	}
	return c.pageTask(req, false, false), nil
}

// ShowBookmarks switches to the bookmarks view.
func (c *Controller) ShowBookmarks() *Task {
	return c.showCollection(present.BookmarksView, false)
}

// ShowHistory switches to the history view.
func (c *Controller) ShowHistory() *Task {
	return c.showCollection(present.HistoryView, false)
}

// showCollection switches to (or reloads) a collection view. Leaving the
// feed view abandons whatever the session had in flight. A reload keeps
// the current items on screen until the new ones arrive.
func (c *Controller) showCollection(v present.View, refresh bool) *Task {
	c.epoch++
	if c.view == present.FeedView {
		c.sess.Abandon()
	}
	if c.view != v {
		c.items = nil
	}
	c.view = v
	c.collecting = true

	var ids []int
	limit := 0
	if v == present.BookmarksView {
		ids = c.me.Bookmarks()
	} else {
		ids = c.me.History()
		limit = c.historyLimit
	}

	src := c.src
	return c.task(v.String(), func(ctx context.Context) func(*Controller) Update {
		var items []hn.Item
		if v == present.BookmarksView {
			items = collection.Bookmarks(ctx, src, ids)
		} else {
			items = collection.History(ctx, src, ids, limit)
		}
		return func(c *Controller) Update {
			c.items = items
			c.collecting = false
			var n *Notice
			if refresh {
				n = &Notice{Kind: Success, Text: textRefreshed}
			}
			return c.update(n)
		}
	})
}

// Refresh fully reloads the active view.
func (c *Controller) Refresh() (*Task, error) {
	if c.view != present.FeedView {
		return c.showCollection(c.view, true), nil
	}
	return c.activate(c.feed, true)
}

// SetQuery replaces the search query.
func (c *Controller) SetQuery(q string) Update {
	c.query = q
	return c.update(nil)
}

// ToggleBookmark flips the bookmark on id. While the bookmarks view is
// active the returned update carries a reload of that view.
func (c *Controller) ToggleBookmark(id int) Update {
	notice := c.me.ToggleBookmark(id)
	kind := Success
	if notice == personal.Removed {
		kind = Info
	}
	n := &Notice{Kind: kind, Text: notice.String()}

	if c.view == present.BookmarksView {
		next := c.showCollection(present.BookmarksView, false)
		u := c.update(n)
		u.Next = next
		return u
	}
	return c.update(n)
}

// Open records item in the history and returns where to navigate. While
// the history view is active the update carries a reload of it.
func (c *Controller) Open(item hn.Item) (string, Update) {
	c.me.RecordHistory(item.ID)
	target := c.src.OpenURL(item)
	if c.view == present.HistoryView {
		next := c.showCollection(present.HistoryView, false)
		u := c.update(nil)
		u.Next = next
		return target, u
	}
	return target, c.update(nil)
}

// ClearHistory empties the history.
func (c *Controller) ClearHistory() Update {
	c.me.ClearHistory()
	if c.view == present.HistoryView {
		c.epoch++
		c.items = []hn.Item{}
		c.collecting = false
	}
	return c.update(&Notice{Kind: Info, Text: "History cleared"})
}

// Drive runs t and every follow-up synchronously, applying each result.
// It returns the last update with the latest notice carried forward.
func Drive(ctx context.Context, c *Controller, t *Task) Update {
	u := Update{Page: c.Page()}
	var notice *Notice
	for t != nil {
		u = c.Apply(t.Run(ctx))
		if u.Notice != nil {
			notice = u.Notice
		}
		t = u.Next
	}
	u.Notice = notice
	return u
}
