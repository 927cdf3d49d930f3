// Package personal holds the user's bookmarks and reading history and
// persists both on every mutation.
package personal

import (
	"github.com/vidyasagar/devnews/internal/storage"
)

// HistoryCap is the maximum number of history entries kept.
const HistoryCap = 100

// Notice reports the outcome of a bookmark toggle.
type Notice int

const (
	Added Notice = iota
	Removed
)

func (n Notice) String() string {
	if n == Added {
		return "Added to bookmarks"
	}
	return "Removed from bookmarks"
}

// State is the bookmark set and the recency-ordered history.
//
// Bookmarks keep insertion order and new ones are appended. History is
// most-recent-first. The asymmetry is intentional: history is ordered by
// recency, bookmarks are a set whose order is incidental.
type State struct {
	kv        storage.KV
	bookmarks []int
	history   []int
}

// Load reads both collections from kv. Stored lists are cleaned of
// duplicates and history is cut to HistoryCap, so a hand-edited store
// cannot break the invariants.
func Load(kv storage.KV) *State {
	history := dedupe(storage.LoadIDs(kv, storage.HistoryKey))
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}
	return &State{
		kv:        kv,
		bookmarks: dedupe(storage.LoadIDs(kv, storage.BookmarksKey)),
		history:   history,
	}
}

// IsBookmarked reports whether id is bookmarked.
func (s *State) IsBookmarked(id int) bool {
	return indexOf(s.bookmarks, id) >= 0
}

// ToggleBookmark removes id if bookmarked, otherwise appends it.
func (s *State) ToggleBookmark(id int) Notice {
	notice := Added
	if i := indexOf(s.bookmarks, id); i >= 0 {
		s.bookmarks = append(s.bookmarks[:i:i], s.bookmarks[i+1:]...)
		notice = Removed
	} else {
		s.bookmarks = append(s.bookmarks, id)
	}
	storage.SaveIDs(s.kv, storage.BookmarksKey, s.bookmarks)
	return notice
}

// Bookmarks returns a copy of the bookmarked ids in insertion order.
func (s *State) Bookmarks() []int {
	return clone(s.bookmarks)
}

// BookmarkCount returns the number of bookmarks.
func (s *State) BookmarkCount() int {
	return len(s.bookmarks)
}

// RecordHistory moves id to the front of the history, adding it if absent.
func (s *State) RecordHistory(id int) {
	next := make([]int, 0, len(s.history)+1)
	next = append(next, id)
	for _, h := range s.history {
		if h != id {
			next = append(next, h)
		}
	}
	if len(next) > HistoryCap {
		next = next[:HistoryCap]
	}
	s.history = next
	storage.SaveIDs(s.kv, storage.HistoryKey, s.history)
}

// History returns a copy of the history, most recent first.
func (s *State) History() []int {
	return clone(s.history)
}

// ClearHistory empties the history.
func (s *State) ClearHistory() {
	s.history = []int{}
	storage.SaveIDs(s.kv, storage.HistoryKey, s.history)
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func clone(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}
