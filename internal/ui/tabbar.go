package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/present"
	"github.com/vidyasagar/devnews/internal/theme"
)

// Tab is one navigation target: a feed or a collection view.
type Tab struct {
	View present.View
	Feed hn.Feed // set for feed tabs
}

func (t Tab) label(bookmarks int) string {
	switch t.View {
	case present.BookmarksView:
		return fmt.Sprintf("🔖 Bookmarks %d", bookmarks)
	case present.HistoryView:
		return "📜 History"
	}
	return t.Feed.Icon() + " " + t.Feed.Title()
}

// TabBar renders the feed and collection tabs.
type TabBar struct {
	tabs      []Tab
	active    int
	width     int
	bookmarks int
}

// NewTabBar creates a tab bar with every feed followed by the collection
// views.
func NewTabBar() TabBar {
	var tabs []Tab
	for _, f := range hn.Feeds() {
		tabs = append(tabs, Tab{View: present.FeedView, Feed: f})
	}
	tabs = append(tabs, Tab{View: present.BookmarksView}, Tab{View: present.HistoryView})
	return TabBar{tabs: tabs}
}

// SetWidth sets the tab bar width.
func (tb *TabBar) SetWidth(w int) {
	tb.width = w
}

// SetBookmarkCount updates the badge on the bookmarks tab.
func (tb *TabBar) SetBookmarkCount(n int) {
	tb.bookmarks = n
}

// Select highlights the tab matching view and feed.
func (tb *TabBar) Select(view present.View, feed hn.Feed) {
	for i, t := range tb.tabs {
		if t.View == view && (view != present.FeedView || t.Feed == feed) {
			tb.active = i
			return
		}
	}
}

// Next returns the tab after the active one.
func (tb *TabBar) Next() Tab {
	return tb.tabs[(tb.active+1)%len(tb.tabs)]
}

// Prev returns the tab before the active one.
func (tb *TabBar) Prev() Tab {
	return tb.tabs[(tb.active-1+len(tb.tabs))%len(tb.tabs)]
}

// Active returns the active tab.
func (tb *TabBar) Active() Tab {
	return tb.tabs[tb.active]
}

// View renders the tab bar. Labels of inactive tabs shrink to their icon
// when the terminal is too narrow.
func (tb *TabBar) View() string {
	t := theme.Current

	activeStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.TabActive).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.TabInactive).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	full := 0
	for _, tab := range tb.tabs {
		full += lipgloss.Width(tab.label(tb.bookmarks)) + 3
	}
	compact := tb.width > 0 && full > tb.width

	var result string
	for i, tab := range tb.tabs {
		label := tab.label(tb.bookmarks)
		if i == tb.active {
			result += activeStyle.Render(label)
		} else {
			if compact {
				label = tab.short(tb.bookmarks)
			}
			result += inactiveStyle.Render(label)
		}
		if i < len(tb.tabs)-1 {
			result += separatorStyle.Render("|")
		}
	}

	barStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(tb.width)

	return barStyle.Render(result)
}

func (t Tab) short(bookmarks int) string {
	switch t.View {
	case present.BookmarksView:
		return fmt.Sprintf("🔖%d", bookmarks)
	case present.HistoryView:
		return "📜"
	}
	return t.Feed.Icon()
}
