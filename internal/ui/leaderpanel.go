package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/theme"
)

// LeaderBinding is one shortcut reachable after the leader key.
type LeaderBinding struct {
	Key    string
	Desc   string
	Action string // "feed:<name>", "bookmarks", "refresh", ...
}

// LeaderGroup is a named column of shortcuts.
type LeaderGroup struct {
	Name     string
	Icon     string
	Bindings []LeaderBinding
}

// LeaderPanel is the popup palette shown after pressing Space.
type LeaderPanel struct {
	visible bool
	groups  []LeaderGroup
}

var feedLeaderKeys = map[hn.Feed]string{
	hn.Top: "t", hn.Best: "b", hn.New: "n", hn.Ask: "a", hn.Show: "s", hn.Job: "j",
}

// NewLeaderPanel creates a leader panel with the default shortcut groups.
func NewLeaderPanel() LeaderPanel {
	var feeds []LeaderBinding
	for _, f := range hn.Feeds() {
		feeds = append(feeds, LeaderBinding{Key: feedLeaderKeys[f], Desc: f.Title(), Action: "feed:" + string(f)})
	}
	return LeaderPanel{groups: []LeaderGroup{
		{Name: "Feeds", Icon: "📡", Bindings: feeds},
		{Name: "Views", Icon: "👁", Bindings: []LeaderBinding{
			{Key: "B", Desc: "Bookmarks", Action: "bookmarks"},
			{Key: "H", Desc: "History", Action: "history"},
			{Key: "/", Desc: "Filter", Action: "search"},
			{Key: "?", Desc: "Help", Action: "help"},
		}},
		{Name: "Actions", Icon: "🔧", Bindings: []LeaderBinding{
			{Key: "r", Desc: "Refresh", Action: "refresh"},
			{Key: "m", Desc: "Load more", Action: "more"},
			{Key: "T", Desc: "Next theme", Action: "theme"},
			{Key: ":", Desc: "Command", Action: "command"},
		}},
	}}
}

// Lookup returns the binding for key.
func (lp *LeaderPanel) Lookup(key string) (LeaderBinding, bool) {
	for _, g := range lp.groups {
		for _, b := range g.Bindings {
			if b.Key == key {
				return b, true
			}
		}
	}
	return LeaderBinding{}, false
}

// Show makes the panel visible.
func (lp *LeaderPanel) Show() { lp.visible = true }

// Hide closes the panel.
func (lp *LeaderPanel) Hide() { lp.visible = false }

// IsVisible reports whether the panel is shown.
func (lp *LeaderPanel) IsVisible() bool { return lp.visible }

// View renders the palette as a boxed set of columns.
func (lp *LeaderPanel) View() string {
	if !lp.visible {
		return ""
	}
	t := theme.Current

	groupNameStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Underline(true)
	keyBadgeStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Background).Background(t.Secondary).Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)
	separatorStyle := lipgloss.NewStyle().Foreground(t.Border)
	colStyle := lipgloss.NewStyle().Width(18)

	rows := 0
	for _, g := range lp.groups {
		rows = max(rows, len(g.Bindings))
	}

	var columns []string
	for i, g := range lp.groups {
		lines := []string{groupNameStyle.Render(g.Icon + " " + g.Name), ""}
		for _, b := range g.Bindings {
			lines = append(lines, keyBadgeStyle.Render(b.Key)+descStyle.Render(" "+b.Desc))
		}
		for len(lines) < rows+2 {
			lines = append(lines, "")
		}
		columns = append(columns, colStyle.Render(strings.Join(lines, "\n")))
		if i < len(lp.groups)-1 {
			columns = append(columns, separatorStyle.Render(strings.Repeat(" │ \n", rows+1)+" │ "))
		}
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	rule := separatorStyle.Render(strings.Repeat("─", lipgloss.Width(body)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("⚡ Leader Key"),
		rule,
		"",
		body,
		"",
		rule,
		lipgloss.NewStyle().Foreground(t.TextDim).Italic(true).Render("press a key or Esc to dismiss"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(content)
}
