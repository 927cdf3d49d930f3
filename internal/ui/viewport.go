package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// PageViewport wraps bubbles/viewport with scroll info and selection
// following.
type PageViewport struct {
	viewport viewport.Model
	ready    bool
}

// NewPageViewport creates a new viewport (dimensions set on first WindowSizeMsg).
func NewPageViewport() PageViewport {
	return PageViewport{}
}

// SetSize updates the viewport dimensions.
func (pv *PageViewport) SetSize(width, height int) {
	if !pv.ready {
		pv.viewport = viewport.New(width, height)
		pv.viewport.MouseWheelEnabled = true
		pv.viewport.MouseWheelDelta = 3
		pv.ready = true
	} else {
		pv.viewport.Width = width
		pv.viewport.Height = height
	}
}

// SetContent replaces the content and scrolls to the top.
func (pv *PageViewport) SetContent(content string) {
	if !pv.ready {
		return
	}
	pv.viewport.SetContent(content)
	pv.viewport.GotoTop()
}

// Redraw replaces the content but keeps the scroll offset, so a list can
// be re-rendered after a bookmark toggle without jumping.
func (pv *PageViewport) Redraw(content string) {
	if !pv.ready {
		return
	}
	offset := pv.viewport.YOffset
	pv.viewport.SetContent(content)
	pv.viewport.SetYOffset(offset)
}

// EnsureVisible scrolls the minimum needed for lines [top, bottom] to be on
// screen, preferring top when the range is taller than the viewport.
func (pv *PageViewport) EnsureVisible(top, bottom int) {
	if !pv.ready {
		return
	}
	h := pv.viewport.Height
	off := pv.viewport.YOffset
	switch {
	case top < off:
		pv.viewport.SetYOffset(top)
	case bottom >= off+h:
		pv.viewport.SetYOffset(min(top, bottom-h+1))
	}
}

// Update forwards messages to the viewport.
func (pv *PageViewport) Update(msg tea.Msg) (*PageViewport, tea.Cmd) {
	if !pv.ready {
		return pv, nil
	}
	var cmd tea.Cmd
	pv.viewport, cmd = pv.viewport.Update(msg)
	return pv, cmd
}

// View renders the viewport.
func (pv *PageViewport) View() string {
	if !pv.ready {
		return "\n  Initializing..."
	}
	return pv.viewport.View()
}

// ScrollInfo returns a string like "42%" or "TOP" or "BOT".
func (pv *PageViewport) ScrollInfo() string {
	if !pv.ready {
		return ""
	}
	pct := pv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// AtBottom reports whether the last line is visible.
func (pv *PageViewport) AtBottom() bool {
	return pv.ready && pv.viewport.AtBottom()
}

// HalfPageDown scrolls down half a page.
func (pv *PageViewport) HalfPageDown() {
	if pv.ready {
		pv.viewport.HalfViewDown()
	}
}

// HalfPageUp scrolls up half a page.
func (pv *PageViewport) HalfPageUp() {
	if pv.ready {
		pv.viewport.HalfViewUp()
	}
}

// LineDown scrolls down n lines.
func (pv *PageViewport) LineDown(n int) {
	if pv.ready {
		pv.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (pv *PageViewport) LineUp(n int) {
	if pv.ready {
		pv.viewport.LineUp(n)
	}
}

// GotoTop scrolls to the top.
func (pv *PageViewport) GotoTop() {
	if pv.ready {
		pv.viewport.GotoTop()
	}
}

// GotoBottom scrolls to the bottom.
func (pv *PageViewport) GotoBottom() {
	if pv.ready {
		pv.viewport.GotoBottom()
	}
}

// Width returns the viewport width.
func (pv *PageViewport) Width() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.Width
}

// Height returns the viewport height.
func (pv *PageViewport) Height() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.Height
}
