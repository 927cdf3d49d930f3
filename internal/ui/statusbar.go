package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/devnews/internal/theme"
)

// Notice kinds, matching the controller's.
const (
	NoticeSuccess = iota
	NoticeInfo
	NoticeError
)

// StatusBar shows the mode, the current notice and page info at the bottom
// of the screen.
type StatusBar struct {
	mode       string
	title      string
	count      string
	updated    string
	scrollInfo string
	spinner    string // non-empty while loading
	notice     string
	noticeKind int
	width      int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "NORMAL",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator (NORMAL, COMMAND, SEARCH, ...).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetTitle updates the view title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetCount sets the story count label, e.g. "18 stories".
func (s *StatusBar) SetCount(label string) {
	s.count = label
}

// SetUpdated sets the last-updated clock, "" to hide it.
func (s *StatusBar) SetUpdated(hhmm string) {
	s.updated = hhmm
}

// SetScrollInfo sets the scroll position string (e.g. "42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetLoading shows frame as a loading indicator; "" hides it.
func (s *StatusBar) SetLoading(frame string) {
	s.spinner = frame
}

// SetNotice shows a transient notification.
func (s *StatusBar) SetNotice(kind int, text string) {
	s.noticeKind = kind
	s.notice = text
}

// ClearNotice hides the notification.
func (s *StatusBar) ClearNotice() {
	s.notice = ""
}

// Notice returns the notification text currently shown.
func (s *StatusBar) Notice() string {
	return s.notice
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	var modeIcon string
	switch s.mode {
	case "COMMAND":
		modeStyle = modeStyle.Background(t.Accent)
		modeIcon = "⌘ "
	case "SEARCH":
		modeStyle = modeStyle.Background(t.Warning)
		modeIcon = "🔍 "
	case "READER":
		modeStyle = modeStyle.Background(t.Secondary)
		modeIcon = "📖 "
	case "LEADER":
		modeStyle = modeStyle.Background(t.Primary)
		modeIcon = "⚡ "
	default:
		modeStyle = modeStyle.Background(t.Primary)
		modeIcon = "👁 "
	}
	mode := modeStyle.Render(modeIcon + s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	var left string
	switch {
	case s.spinner != "":
		left = lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1).
			Render(s.spinner + " Loading...")
	case s.notice != "":
		color := t.Success
		switch s.noticeKind {
		case NoticeInfo:
			color = t.Info
		case NoticeError:
			color = t.Error
		}
		left = lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1).
			Render(s.notice)
	case s.title != "":
		left = lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.title)
	}

	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	var right string
	if s.count != "" {
		right += rightStyle.Render(s.count)
	}
	if s.updated != "" {
		right += rightStyle.Render("🕐 " + s.updated)
	}
	if s.scrollInfo != "" {
		right += lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.scrollInfo)
	}

	spacerWidth := max(s.width-lipgloss.Width(mode)-lipgloss.Width(left)-lipgloss.Width(right), 0)
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
