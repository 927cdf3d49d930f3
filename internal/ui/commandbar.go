package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/devnews/internal/theme"
)

// CommandType identifies what the command bar is collecting.
type CommandType int

const (
	CommandNone   CommandType = iota
	CommandEx                 // : commands
	CommandSearch             // / story filter
)

// recallLimit caps each recall list.
const recallLimit = 50

// CommandResult is a submitted command, or the filter text as it is typed.
type CommandResult struct {
	Type  CommandType
	Value string
}

// CommandBar is the input line at the bottom of the screen. Commands get
// Tab completion; the story filter reports every edit so the list narrows
// while typing. Each kind keeps its own recall list for Up/Down.
type CommandBar struct {
	input  textinput.Model
	kind   CommandType
	width  int
	opened string // value at Open, restored by Cancel
	words  []string

	recall map[CommandType][]string // most recent first
	pos    int                      // index into the recall list, -1 while editing
	draft  string                   // text typed before browsing the recall list
}

// NewCommandBar creates a command bar.
func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.CharLimit = 256

	return CommandBar{
		input:  ti,
		recall: map[CommandType][]string{},
		pos:    -1,
	}
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = max(w-4, 1)
}

// SetCompletions sets the command names Tab completes.
func (c *CommandBar) SetCompletions(words []string) {
	c.words = slices.Clone(words)
	slices.Sort(c.words)
}

// Open shows the bar for kind, pre-filled with value.
func (c *CommandBar) Open(kind CommandType, value string) tea.Cmd {
	c.kind = kind
	c.opened = value
	c.pos = -1
	c.draft = ""

	switch kind {
	case CommandEx:
		c.input.Placeholder = "command... (Tab completes)"
		c.input.Prompt = ":"
	case CommandSearch:
		c.input.Placeholder = "filter by title, author or domain..."
		c.input.Prompt = "/"
	}
	c.setValue(value)
	return c.input.Focus()
}

// Close hides the bar.
func (c *CommandBar) Close() {
	c.kind = CommandNone
	c.input.Blur()
	c.input.Reset()
}

// Cancel hides the bar and returns the value it was opened with, so a
// filter edited live can be put back.
func (c *CommandBar) Cancel() CommandResult {
	r := CommandResult{Type: c.kind, Value: c.opened}
	c.Close()
	return r
}

// IsActive reports whether the bar is shown.
func (c *CommandBar) IsActive() bool {
	return c.kind != CommandNone
}

// Type returns what the bar is collecting.
func (c *CommandBar) Type() CommandType {
	return c.kind
}

// Value returns the text typed so far.
func (c *CommandBar) Value() string {
	return c.input.Value()
}

// Recent returns the recall list for kind, most recent first.
func (c *CommandBar) Recent(kind CommandType) []string {
	return slices.Clone(c.recall[kind])
}

// Submit hides the bar and returns the trimmed input. Non-empty input is
// remembered for recall.
func (c *CommandBar) Submit() CommandResult {
	val := strings.TrimSpace(c.input.Value())
	r := CommandResult{Type: c.kind, Value: val}
	if val != "" {
		c.remember(c.kind, val)
	}
	c.Close()
	return r
}

func (c *CommandBar) remember(kind CommandType, val string) {
	list := slices.DeleteFunc(c.recall[kind], func(s string) bool { return s == val })
	list = append([]string{val}, list...)
	if len(list) > recallLimit {
		list = list[:recallLimit]
	}
	c.recall[kind] = list
}

// Update handles a key while the bar is open. Enter and Esc are left to
// the caller. For the story filter, a non-nil result carries the new text
// whenever it changed.
func (c *CommandBar) Update(msg tea.Msg) (*CommandResult, tea.Cmd) {
	if !c.IsActive() {
		return nil, nil
	}
	before := c.input.Value()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			return nil, nil
		case tea.KeyUp:
			c.browse(1)
		case tea.KeyDown:
			c.browse(-1)
		case tea.KeyTab:
			if c.kind == CommandEx {
				c.complete()
			}
		default:
			c.pos = -1
			c.input, cmd = c.input.Update(msg)
		}
	default:
		c.input, cmd = c.input.Update(msg)
	}

	if c.kind == CommandSearch && c.input.Value() != before {
		return &CommandResult{Type: CommandSearch, Value: c.input.Value()}, cmd
	}
	return nil, cmd
}

// browse steps through the recall list; step 1 goes further back. Stepping
// forward past the newest entry restores the draft.
func (c *CommandBar) browse(step int) {
	list := c.recall[c.kind]
	if len(list) == 0 {
		return
	}
	next := min(c.pos+step, len(list)-1)
	if next < -1 || next == c.pos {
		return
	}
	if c.pos == -1 {
		c.draft = c.input.Value()
	}
	c.pos = next
	if next == -1 {
		c.setValue(c.draft)
		return
	}
	c.setValue(list[next])
}

// complete extends the command name to the longest prefix shared by every
// matching command, adding a space once it is unambiguous.
func (c *CommandBar) complete() {
	val := c.input.Value()
	if strings.Contains(val, " ") {
		return
	}
	var matches []string
	for _, w := range c.words {
		if strings.HasPrefix(w, val) {
			matches = append(matches, w)
		}
	}
	if len(matches) == 0 {
		return
	}
	prefix := matches[0]
	for _, w := range matches[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if len(matches) == 1 {
		prefix += " "
	}
	c.setValue(prefix)
}

func (c *CommandBar) setValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// View renders the command bar.
func (c *CommandBar) View() string {
	if !c.IsActive() {
		return ""
	}

	t := theme.Current
	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width)

	line := c.input.View()
	if c.pos >= 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Italic(true)
		line += hint.Render(fmt.Sprintf("  (recent %d/%d)", c.pos+1, len(c.recall[c.kind])))
	}
	return barStyle.Render(line)
}
