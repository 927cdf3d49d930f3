// Package collection resolves the locally stored bookmark and history
// lists into items. Collection views are never paged.
package collection

import (
	"context"

	"github.com/vidyasagar/devnews/internal/hn"
)

// HistoryLimit is how many of the most recent history entries the history
// view shows.
const HistoryLimit = 50

// Resolver fetches items by id, dropping the ones that cannot be found.
type Resolver interface {
	FetchItems(ctx context.Context, ids []int) []hn.Item
}

// Resolve returns the items for ids in the order of ids. An empty list
// returns immediately without touching the network.
func Resolve(ctx context.Context, r Resolver, ids []int) []hn.Item {
	if len(ids) == 0 {
		return []hn.Item{}
	}
	items := r.FetchItems(ctx, ids)
	if items == nil {
		items = []hn.Item{}
	}
	return items
}

// Bookmarks resolves every bookmarked id.
func Bookmarks(ctx context.Context, r Resolver, bookmarks []int) []hn.Item {
	return Resolve(ctx, r, bookmarks)
}

// History resolves at most limit of the most recent history ids. A
// non-positive limit means HistoryLimit.
func History(ctx context.Context, r Resolver, history []int, limit int) []hn.Item {
	if limit <= 0 {
		limit = HistoryLimit
	}
	if len(history) > limit {
		history = history[:limit]
	}
	return Resolve(ctx, r, history)
}
