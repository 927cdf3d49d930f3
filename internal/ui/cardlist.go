package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/devnews/internal/present"
	"github.com/vidyasagar/devnews/internal/theme"
)

// cardHeight is the number of lines one card takes, including the blank
// line after it.
const cardHeight = 3

// CardList renders a page of story cards and tracks the selected one.
type CardList struct {
	page     present.Page
	selected int
}

// SetPage replaces the page. The selection stays on the same story when it
// is still listed, otherwise it is clamped.
func (cl *CardList) SetPage(p present.Page) {
	var prevID int
	if c, ok := cl.Selected(); ok {
		prevID = c.ID
	}
	cl.page = p
	for i, c := range p.Cards {
		if c.ID == prevID {
			cl.selected = i
			return
		}
	}
	cl.selected = min(cl.selected, max(len(p.Cards)-1, 0))
}

// Reset moves the selection to the first card.
func (cl *CardList) Reset() {
	cl.selected = 0
}

// Page returns the page being shown.
func (cl *CardList) Page() present.Page {
	return cl.page
}

// Selected returns the selected card.
func (cl *CardList) Selected() (present.Card, bool) {
	if cl.selected < 0 || cl.selected >= len(cl.page.Cards) {
		return present.Card{}, false
	}
	return cl.page.Cards[cl.selected], true
}

// Index returns the selected position.
func (cl *CardList) Index() int {
	return cl.selected
}

// Move shifts the selection by delta, clamped to the list.
func (cl *CardList) Move(delta int) {
	if len(cl.page.Cards) == 0 {
		return
	}
	cl.selected = max(0, min(cl.selected+delta, len(cl.page.Cards)-1))
}

// First selects the first card.
func (cl *CardList) First() { cl.selected = 0 }

// Last selects the last card.
func (cl *CardList) Last() { cl.selected = max(len(cl.page.Cards)-1, 0) }

// VisibleCards is how many cards fit in height lines.
func (cl *CardList) VisibleCards(height int) int {
	return max(height/cardHeight, 1)
}

// SelectedLines returns the first and last content line of the selected
// card.
func (cl *CardList) SelectedLines() (int, int) {
	top := cl.selected * cardHeight
	return top, top + cardHeight - 2
}

// Render draws the list for the given width.
func (cl *CardList) Render(width int) string {
	t := theme.Current
	p := cl.page

	if p.Empty {
		return cl.renderEmpty(width)
	}

	rankStyle := lipgloss.NewStyle().Foreground(t.TextDim).Width(5).Align(lipgloss.Right)
	titleStyle := lipgloss.NewStyle().Foreground(t.Text)
	selTitleStyle := lipgloss.NewStyle().Foreground(t.TextBright).Bold(true)
	domainStyle := lipgloss.NewStyle().Foreground(t.Domain)
	scoreStyle := lipgloss.NewStyle().Foreground(t.Score).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	markStyle := lipgloss.NewStyle().Foreground(t.Bookmark)
	cursorStyle := lipgloss.NewStyle().Foreground(t.Selection).Bold(true)

	var sb strings.Builder
	for i, c := range p.Cards {
		cursor := "  "
		ts := titleStyle
		if i == cl.selected {
			cursor = cursorStyle.Render("▌ ")
			ts = selTitleStyle
		}
		mark := "  "
		if c.Bookmarked {
			mark = markStyle.Render("★ ")
		}

		title := truncate(c.DisplayTitle(), width-22-len(c.DisplayDomain()))
		sb.WriteString(cursor + rankStyle.Render(fmt.Sprintf("%d.", c.Rank)) + " " + mark +
			ts.Render(title) + " " + domainStyle.Render("("+c.DisplayDomain()+")") + "\n")

		meta := metaStyle.Render(strings.TrimPrefix(c.Meta(), fmt.Sprintf("%d points", c.Score)))
		sb.WriteString("          " + scoreStyle.Render(fmt.Sprintf("▲ %d points", c.Score)) + meta + "\n")
		sb.WriteString("\n")
	}

	if p.CanLoadMore {
		hint := lipgloss.NewStyle().Foreground(t.Accent).Italic(true)
		sb.WriteString("          " + hint.Render("── press m to load more ──") + "\n")
	}
	return sb.String()
}

func (cl *CardList) renderEmpty(width int) string {
	t := theme.Current
	box := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Width(max(width-8, 20)).
		Padding(2, 4)
	head := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	p := cl.page
	var msg string
	switch {
	case p.Loading:
		return box.Render(head.Render("Loading stories..."))
	case p.Query != "":
		msg = fmt.Sprintf("No stories match %q.\nPress Esc to clear the filter.", p.Query)
	case p.View == present.BookmarksView:
		msg = "No bookmarks yet.\nPress b on a story to bookmark it."
	case p.View == present.HistoryView:
		msg = "Nothing read yet.\nStories you open show up here."
	default:
		msg = "No stories found.\nPress r to refresh."
	}
	return box.Render(head.Render("📭 Nothing here") + "\n\n" + msg)
}

// truncate shortens s to at most n display columns.
func truncate(s string, n int) string {
	if n < 8 {
		n = 8
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
