package present

import (
	"fmt"
	"time"

	"github.com/vidyasagar/devnews/internal/hn"
)

// FallbackDomain is shown on cards for self-hosted discussions. It is
// display only and never matched by the filter.
const FallbackDomain = "news.ycombinator.com"

// View is which item source is on screen.
type View int

const (
	FeedView View = iota
	BookmarksView
	HistoryView
)

func (v View) String() string {
	switch v {
	case BookmarksView:
		return "bookmarks"
	case HistoryView:
		return "history"
	}
	return "feed"
}

// Card is the render model of one item.
type Card struct {
	hn.Item
	Rank        int // 1-based position in the filtered list
	Age         string
	Domain      string // "" when the item has no external link
	Bookmarked  bool
	OpenURL     string
	CommentsURL string
}

// DisplayDomain is Domain, or FallbackDomain for self-hosted items.
func (c Card) DisplayDomain() string {
	if c.Domain == "" {
		return FallbackDomain
	}
	return c.Domain
}

// DisplayTitle is the title, or a placeholder when absent.
func (c Card) DisplayTitle() string {
	if c.Title == "" {
		return "(untitled)"
	}
	return c.Title
}

// Meta is the one-line summary under the title.
func (c Card) Meta() string {
	by := c.By
	if by == "" {
		by = "unknown"
	}
	s := fmt.Sprintf("%d points by %s", c.Score, by)
	if c.Age != "" {
		s += " " + c.Age
	}
	return fmt.Sprintf("%s | %d comments", s, c.Descendants)
}

// Page is everything the UI needs to draw the current view.
type Page struct {
	View          View
	Feed          hn.Feed
	Title         string
	Cards         []Card
	Count         int
	Empty         bool
	CanLoadMore   bool
	Loading       bool
	Query         string
	BookmarkCount int
	UpdatedAt     time.Time
}

// CountLabel is e.g. "18 stories".
func (p Page) CountLabel() string {
	if p.Count == 1 {
		return "1 story"
	}
	return fmt.Sprintf("%d stories", p.Count)
}

// UpdatedLabel is the last-updated time as HH:MM, or "" if never.
func (p Page) UpdatedLabel() string {
	if p.UpdatedAt.IsZero() {
		return ""
	}
	return p.UpdatedAt.Format("15:04")
}

// Links resolves the navigation targets of an item.
type Links interface {
	OpenURL(item hn.Item) string
	DiscussionURL(id int) string
}

// Input is the state a page is built from.
type Input struct {
	View          View
	Feed          hn.Feed
	Items         []hn.Item
	Query         string
	Bookmarked    func(id int) bool
	BookmarkCount int
	CanLoadMore   bool
	Loading       bool
	UpdatedAt     time.Time
}

// Builder builds pages. Now defaults to time.Now.
type Builder struct {
	Links Links
	Now   func() time.Time
}

// Build filters in.Items by in.Query and derives the cards. It is always a
// full recomputation.
func (b Builder) Build(in Input) Page {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	ts := now()

	visible := Filter(in.Items, in.Query)
	cards := make([]Card, len(visible))
	for i, it := range visible {
		cards[i] = Card{
			Item:        it,
			Rank:        i + 1,
			Age:         RelativeAge(it.Time, ts),
			Domain:      Domain(it.URL),
			Bookmarked:  in.Bookmarked != nil && in.Bookmarked(it.ID),
			OpenURL:     b.Links.OpenURL(it),
			CommentsURL: b.Links.DiscussionURL(it.ID),
		}
	}

	return Page{
		View:          in.View,
		Feed:          in.Feed,
		Title:         title(in.View, in.Feed),
		Cards:         cards,
		Count:         len(cards),
		Empty:         len(cards) == 0,
		CanLoadMore:   in.View == FeedView && in.CanLoadMore,
		Loading:       in.Loading,
		Query:         Normalize(in.Query),
		BookmarkCount: in.BookmarkCount,
		UpdatedAt:     in.UpdatedAt,
	}
}

func title(v View, f hn.Feed) string {
	switch v {
	case BookmarksView:
		return "🔖 Bookmarks"
	case HistoryView:
		return "📜 History"
	}
	if !f.Valid() {
		return ""
	}
	return f.Icon() + " " + f.Title()
}
