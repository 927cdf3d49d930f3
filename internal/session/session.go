// Package session drives one feed at a time: the ranked identifier list is
// fetched once per activation and then revealed in fixed-size pages.
//
// A Session is not safe for concurrent use. The owner calls Begin, SetIDs,
// NextPage and Commit from one goroutine; the network work in between may
// run anywhere, and every result carries the generation it was issued
// under so superseded work can be recognised and dropped.
package session

import (
	"context"
	"errors"

	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/logging"
)

// DefaultPageSize is used when a non-positive page size is configured.
const DefaultPageSize = 20

// ErrBusy is returned when a load is already in flight.
var ErrBusy = errors.New("session: load already in flight")

// State is the session lifecycle.
type State int

const (
	Idle State = iota
	Loading
	Revealing
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Revealing:
		return "revealing"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Ticket identifies one activation.
type Ticket struct {
	gen  uint64
	Feed hn.Feed
}

// PageRequest is a slice [Start, End) of the identifier list waiting to be
// resolved.
type PageRequest struct {
	gen   uint64
	Start int
	End   int
	IDs   []int
}

// Empty reports whether there is nothing to fetch.
func (r PageRequest) Empty() bool {
	return len(r.IDs) == 0
}

// Source is the part of the content client a session needs.
type Source interface {
	ListIDs(ctx context.Context, feed hn.Feed) ([]int, error)
	FetchItems(ctx context.Context, ids []int) []hn.Item
}

// Session holds the state of the active feed.
type Session struct {
	pageSize int
	state    State
	gen      uint64
	feed     hn.Feed
	ids      []int
	revealed int
	items    []hn.Item
}

// New creates an idle session.
func New(pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{pageSize: pageSize}
}

// PageSize returns the configured page size.
func (s *Session) PageSize() int { return s.pageSize }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Feed returns the feed of the latest activation.
func (s *Session) Feed() hn.Feed { return s.feed }

// Busy reports whether a list fetch or page reveal is in flight.
func (s *Session) Busy() bool {
	return s.state == Loading || s.state == Revealing
}

// Items returns the resolved items in ranking order.
func (s *Session) Items() []hn.Item {
	out := make([]hn.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Revealed is the cursor into the identifier list.
func (s *Session) Revealed() int { return s.revealed }

// Total is the length of the identifier list.
func (s *Session) Total() int { return len(s.ids) }

// HasMore reports whether unrevealed identifiers remain. It is computed
// from the cursor, not from how many items resolved.
func (s *Session) HasMore() bool {
	return s.revealed < len(s.ids)
}

// Begin starts a fresh activation of feed, discarding everything the
// previous one loaded.
func (s *Session) Begin(feed hn.Feed) (Ticket, error) {
	if s.Busy() {
		return Ticket{}, ErrBusy
	}
	s.gen++
	s.reset()
	s.feed = feed
	s.state = Loading
	return Ticket{gen: s.gen, Feed: feed}, nil
}

// Current reports whether t belongs to the latest activation.
func (s *Session) Current(t Ticket) bool {
	return t.gen == s.gen
}

// Fail ends the activation t after its list fetch failed. The session is
// left idle and empty. It reports false if t is stale.
func (s *Session) Fail(t Ticket) bool {
	if !s.Current(t) {
		return false
	}
	s.reset()
	s.state = Idle
	return true
}

// SetIDs stores the identifier list of activation t and returns the first
// page to resolve. ok is false if t is stale. An empty list leaves the
// session exhausted and returns an empty request.
func (s *Session) SetIDs(t Ticket, ids []int) (req PageRequest, ok bool) {
	if !s.Current(t) {
		return PageRequest{}, false
	}
	s.ids = ids
	return s.page(), true
}

// NextPage returns the next page to resolve. If the list is exhausted the
// request is empty and the session moves to Exhausted.
func (s *Session) NextPage() (PageRequest, error) {
	if s.Busy() {
		return PageRequest{}, ErrBusy
	}
	return s.page(), nil
}

func (s *Session) page() PageRequest {
	start := s.revealed
	end := min(start+s.pageSize, len(s.ids))
	if start >= end {
		s.state = Exhausted
		return PageRequest{gen: s.gen, Start: start, End: start}
	}
	s.state = Revealing
	return PageRequest{gen: s.gen, Start: start, End: end, IDs: s.ids[start:end]}
}

// Resolve fetches the request's items from src.
func (r PageRequest) Resolve(ctx context.Context, src Source) []hn.Item {
	if r.Empty() {
		return nil
	}
	return src.FetchItems(ctx, r.IDs)
}

// Commit appends the resolved items of req and advances the cursor to the
// end of its range. It reports false, changing nothing, if req is stale.
func (s *Session) Commit(req PageRequest, items []hn.Item) bool {
	if req.gen != s.gen {
		logging.Debug("discarding superseded page", "start", req.Start, "end", req.End)
		return false
	}
	if req.Empty() {
		return true
	}
	s.items = append(s.items, items...)
	s.revealed = req.End
	if s.HasMore() {
		s.state = Idle
	} else {
		s.state = Exhausted
	}
	return true
}

// Abandon supersedes whatever is in flight and empties the session. It is
// used when the feed view is left for another view.
func (s *Session) Abandon() {
	s.gen++
	s.reset()
	s.state = Idle
}

func (s *Session) reset() {
	s.ids = nil
	s.revealed = 0
	s.items = nil
}

// Activate runs a whole activation synchronously: list fetch and first
// page.
func (s *Session) Activate(ctx context.Context, src Source, feed hn.Feed) error {
	t, err := s.Begin(feed)
	if err != nil {
		return err
	}
	ids, err := src.ListIDs(ctx, feed)
	if err != nil {
		s.Fail(t)
		return err
	}
	req, _ := s.SetIDs(t, ids)
	s.Commit(req, req.Resolve(ctx, src))
	return nil
}

// RevealNextPage resolves the next page synchronously and reports whether
// more pages remain.
func (s *Session) RevealNextPage(ctx context.Context, src Source) (bool, error) {
	req, err := s.NextPage()
	if err != nil {
		return false, err
	}
	s.Commit(req, req.Resolve(ctx, src))
	return s.HasMore(), nil
}
