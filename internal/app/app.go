// Package app is the bubbletea frontend. It forwards key presses to the
// controller as intents, runs the returned tasks as commands and redraws
// from the view model each update carries.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/devnews/internal/controller"
	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/logging"
	"github.com/vidyasagar/devnews/internal/present"
	"github.com/vidyasagar/devnews/internal/reader"
	"github.com/vidyasagar/devnews/internal/session"
	"github.com/vidyasagar/devnews/internal/theme"
	"github.com/vidyasagar/devnews/internal/ui"
)

const (
	noticeTTL     = 3 * time.Second
	leaderTimeout = 2 * time.Second
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeCommand      // command bar active
	ModeSearch       // story filter input
	ModeLeader       // leader key palette active
)

// Options wires the model to its collaborators.
type Options struct {
	Controller *controller.Controller
	Reader     *reader.Reader
	Feed       hn.Feed // first feed to load, hn.Top if unset
	Context    context.Context
}

// Model is the top-level bubbletea model for devnews.
type Model struct {
	ctl    *controller.Controller
	reader *reader.Reader
	ctx    context.Context
	first  *controller.Task

	// UI components
	tabBar      ui.TabBar
	statusBar   ui.StatusBar
	commandBar  ui.CommandBar
	leaderPanel ui.LeaderPanel
	cards       ui.CardList
	listView    ui.PageViewport
	readerView  ui.PageViewport
	spinner     spinner.Model

	keys     KeyMap
	mode     Mode
	width    int
	height   int
	ready    bool
	lastGKey bool // for "gg" detection

	page      present.Page
	spinning  bool
	noticeSeq int

	// Reader pane. readerSeq invalidates loads the user has moved away from.
	readerOpen    bool
	readerLoading bool
	readerSeq     int
	doc           *reader.Page
	trail         *reader.Trail
}

// taskDoneMsg carries a finished controller task back to the owner thread.
type taskDoneMsg struct {
	result controller.Result
}

// readerLoadedMsg is sent when a reader page finishes loading.
type readerLoadedMsg struct {
	seq  int
	page *reader.Page
	err  error
}

type noticeClearMsg struct {
	seq int
}

type leaderTimeoutMsg struct{}

// New creates the model and starts loading the first feed.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	feed := opts.Feed
	if !feed.Valid() {
		feed = hn.Top
	}

	m := Model{
		ctl:         opts.Controller,
		reader:      opts.Reader,
		ctx:         ctx,
		tabBar:      ui.NewTabBar(),
		statusBar:   ui.NewStatusBar(),
		commandBar:  ui.NewCommandBar(),
		leaderPanel: ui.NewLeaderPanel(),
		listView:    ui.NewPageViewport(),
		readerView:  ui.NewPageViewport(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:        DefaultKeyMap(),
		trail:       reader.NewTrail(),
	}

	m.commandBar.SetCompletions(commandNames())

	t, err := m.ctl.ActivateFeed(feed)
	if err != nil {
		logging.Error("initial feed activation failed", "feed", feed, "err", err)
	}
	m.first = t
	m.spinning = t != nil
	m.setPage(m.ctl.Page())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.first == nil {
		return nil
	}
	return tea.Batch(m.run(m.first), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case taskDoneMsg:
		u := m.ctl.Apply(msg.result)
		return m, m.applyUpdate(u)

	case readerLoadedMsg:
		return m.handleReaderLoaded(msg)

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			m.statusBar.SetLoading("")
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.statusBar.SetLoading(m.spinner.View())
		return m, cmd

	case noticeClearMsg:
		if msg.seq == m.noticeSeq {
			m.statusBar.ClearNotice()
		}
		return m, nil

	case leaderTimeoutMsg:
		if m.mode == ModeLeader {
			m.leaderPanel.Hide()
			m.setMode(ModeNormal)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Mouse and anything else go to the visible viewport.
	var cmd tea.Cmd
	if m.readerOpen {
		_, cmd = m.readerView.Update(msg)
	} else {
		_, cmd = m.listView.Update(msg)
	}
	m.syncScroll()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading devnews..."
	}

	// [tab bar]
	// [stories | reader]
	// [status bar]
	// [command bar] (if active)
	sections := []string{m.tabBar.View()}
	if m.readerOpen {
		sections = append(sections, m.readerView.View())
	} else {
		sections = append(sections, m.listView.View())
	}
	sections = append(sections, m.statusBar.View())
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	result := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.leaderPanel.IsVisible() {
		result = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.leaderPanel.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(theme.Current.Background),
		)
	}
	return result
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.tabBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	tabBarHeight := 1
	statusBarHeight := 1
	commandBarHeight := 0
	if m.commandBar.IsActive() {
		commandBarHeight = 1
	}
	h := max(m.height-tabBarHeight-statusBarHeight-commandBarHeight, 1)

	m.listView.SetSize(m.width, h)
	m.readerView.SetSize(m.width, h)
	m.redrawList()
	if m.doc != nil {
		m.doc = m.reader.Render(m.doc.Document, m.width)
		m.readerView.Redraw(m.doc.Content)
	}
	m.syncScroll()
}

// run wraps a controller task in a command. The task's I/O happens on the
// command goroutine; its result is applied back in Update.
func (m Model) run(t *controller.Task) tea.Cmd {
	if t == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return taskDoneMsg{result: t.Run(ctx)}
	}
}

// applyUpdate redraws from u and schedules its notice and follow-up.
func (m *Model) applyUpdate(u controller.Update) tea.Cmd {
	m.setPage(u.Page)
	var cmds []tea.Cmd
	if u.Notice != nil {
		cmds = append(cmds, m.notice(*u.Notice))
	}
	if u.Next != nil {
		cmds = append(cmds, m.run(u.Next))
	}
	cmds = append(cmds, m.startSpinner())
	return tea.Batch(cmds...)
}

// startTask redraws the pending state and runs t.
func (m *Model) startTask(t *controller.Task) tea.Cmd {
	m.setPage(m.ctl.Page())
	return tea.Batch(m.run(t), m.startSpinner())
}

func (m *Model) setPage(p present.Page) {
	m.page = p
	m.cards.SetPage(p)
	m.tabBar.SetBookmarkCount(p.BookmarkCount)
	m.tabBar.Select(p.View, p.Feed)
	if !m.readerOpen {
		m.statusBar.SetTitle(p.Title)
	}
	m.statusBar.SetCount(p.CountLabel())
	m.statusBar.SetUpdated(p.UpdatedLabel())
	m.redrawList()
}

func (m *Model) redrawList() {
	m.listView.Redraw(m.cards.Render(m.listView.Width()))
	m.listView.EnsureVisible(m.cards.SelectedLines())
	m.syncScroll()
}

func (m *Model) syncScroll() {
	if m.readerOpen {
		m.statusBar.SetScrollInfo(m.readerView.ScrollInfo())
	} else {
		m.statusBar.SetScrollInfo(m.listView.ScrollInfo())
	}
}

func (m *Model) loading() bool {
	return m.page.Loading || m.readerLoading
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.loading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// notice shows n until the next notice or noticeTTL, whichever is first.
func (m *Model) notice(n controller.Notice) tea.Cmd {
	kind := ui.NoticeSuccess
	switch n.Kind {
	case controller.Info:
		kind = ui.NoticeInfo
	case controller.Failure:
		kind = ui.NoticeError
	}
	m.statusBar.SetNotice(kind, n.Text)
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeClearMsg{seq: seq}
	})
}

func (m *Model) info(format string, args ...any) tea.Cmd {
	return m.notice(controller.Notice{Kind: controller.Info, Text: fmt.Sprintf(format, args...)})
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	switch {
	case mode == ModeCommand:
		m.statusBar.SetMode("COMMAND")
	case mode == ModeSearch:
		m.statusBar.SetMode("SEARCH")
	case mode == ModeLeader:
		m.statusBar.SetMode("LEADER")
	case m.readerOpen:
		m.statusBar.SetMode("READER")
	default:
		m.statusBar.SetMode("NORMAL")
	}
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeCommand, ModeSearch:
		return m.handleCommandMode(msg)
	case ModeLeader:
		return m.handleLeaderMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys while browsing stories or reading.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "g" {
		if m.lastGKey {
			m.lastGKey = false
			m.gotoTop()
			return m, nil
		}
		m.lastGKey = true
		return m, nil
	}
	m.lastGKey = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case m.readerOpen && key.Matches(msg, m.keys.PageBack):
		return m, m.stepTrail(m.trail.Back)

	case m.readerOpen && key.Matches(msg, m.keys.PageForward):
		return m, m.stepTrail(m.trail.Forward)

	case key.Matches(msg, m.keys.Leader):
		m.leaderPanel.Show()
		m.setMode(ModeLeader)
		return m, tea.Tick(leaderTimeout, func(time.Time) tea.Msg {
			return leaderTimeoutMsg{}
		})

	case key.Matches(msg, m.keys.Down):
		if m.readerOpen {
			m.readerView.LineDown(1)
			m.syncScroll()
			return m, nil
		}
		return m, m.moveSelection(1)

	case key.Matches(msg, m.keys.Up):
		if m.readerOpen {
			m.readerView.LineUp(1)
			m.syncScroll()
			return m, nil
		}
		return m, m.moveSelection(-1)

	case key.Matches(msg, m.keys.HalfPageDown):
		if m.readerOpen {
			m.readerView.HalfPageDown()
			m.syncScroll()
			return m, nil
		}
		return m, m.moveSelection(m.cards.VisibleCards(m.listView.Height()) / 2)

	case key.Matches(msg, m.keys.HalfPageUp):
		if m.readerOpen {
			m.readerView.HalfPageUp()
			m.syncScroll()
			return m, nil
		}
		return m, m.moveSelection(-m.cards.VisibleCards(m.listView.Height()) / 2)

	case key.Matches(msg, m.keys.GotoBottom):
		if m.readerOpen {
			m.readerView.GotoBottom()
		} else {
			m.cards.Last()
			m.redrawList()
		}
		m.syncScroll()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.readerOpen {
			m.closeReader()
			return m, nil
		}
		if m.ctl.Query() != "" {
			return m, m.setQuery("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme()

	case key.Matches(msg, m.keys.CommandMode):
		return m, m.openCommandBar(ui.CommandEx, "")

	case key.Matches(msg, m.keys.SearchMode):
		return m, m.openCommandBar(ui.CommandSearch, m.ctl.Query())
	}

	// Story actions only apply to the list.
	if m.readerOpen {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected()

	case key.Matches(msg, m.keys.Comments):
		return m, m.openComments()

	case key.Matches(msg, m.keys.Bookmark):
		if c, ok := m.cards.Selected(); ok {
			return m, m.applyUpdate(m.ctl.ToggleBookmark(c.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.LoadMore):
		return m, m.loadMore()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.Feed):
		n, _ := strconv.Atoi(msg.String())
		feeds := hn.Feeds()
		if n >= 1 && n <= len(feeds) {
			return m, m.activateFeed(feeds[n-1])
		}
		return m, nil

	case key.Matches(msg, m.keys.Bookmarks):
		return m, m.showCollection(present.BookmarksView)

	case key.Matches(msg, m.keys.History):
		return m, m.showCollection(present.HistoryView)

	case key.Matches(msg, m.keys.NextTab):
		return m, m.selectTab(m.tabBar.Next())

	case key.Matches(msg, m.keys.PrevTab):
		return m, m.selectTab(m.tabBar.Prev())
	}

	return m, nil
}

// handleLeaderMode dismisses the palette and runs the chosen shortcut.
func (m Model) handleLeaderMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.leaderPanel.Hide()
	m.setMode(ModeNormal)

	b, ok := m.leaderPanel.Lookup(msg.String())
	if !ok {
		return m, nil
	}
	switch b.Action {
	case "search":
		return m, m.openCommandBar(ui.CommandSearch, m.ctl.Query())
	case "command":
		return m, m.openCommandBar(ui.CommandEx, "")
	case "help":
		m.showHelp()
		return m, nil
	case "theme":
		return m, m.cycleTheme()
	}
	if name, ok := strings.CutPrefix(b.Action, "feed:"); ok {
		return m.executeCommand("feed " + name)
	}
	return m.executeCommand(b.Action)
}

// handleCommandMode processes keys while the command bar is open.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		res := m.commandBar.Cancel()
		m.setMode(ModeNormal)
		m.layout()
		if res.Type == ui.CommandSearch && res.Value != m.ctl.Query() {
			qcmd := m.setQuery(res.Value)
			return m, qcmd
		}
		return m, nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.setMode(ModeNormal)
		m.layout()
		switch result.Type {
		case ui.CommandSearch:
			return m, m.setQuery(result.Value)
		case ui.CommandEx:
			return m.executeCommand(result.Value)
		}
		return m, nil
	}

	res, cmd := m.commandBar.Update(msg)
	if res != nil {
		qcmd := m.setQuery(res.Value)
		return m, tea.Batch(cmd, qcmd)
	}
	return m, cmd
}

func (m *Model) openCommandBar(ct ui.CommandType, value string) tea.Cmd {
	if ct == ui.CommandSearch {
		m.setMode(ModeSearch)
	} else {
		m.setMode(ModeCommand)
	}
	cmd := m.commandBar.Open(ct, value)
	m.layout()
	return cmd
}

// commandNames lists what :commands Tab completes, feed names included.
func commandNames() []string {
	names := []string{
		"quit", "feed", "bookmarks", "history", "clearhistory", "refresh",
		"more", "search", "filter", "theme", "link", "open", "help",
	}
	for _, f := range hn.Feeds() {
		names = append(names, string(f))
	}
	return names
}

// executeCommand handles :commands.
func (m Model) executeCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := strings.Join(parts[1:], " ")

	switch parts[0] {
	case "q", "quit":
		return m, tea.Quit
	case "feed":
		f, ok := hn.ParseFeed(arg)
		if !ok {
			return m, m.info("Unknown feed: %s", arg)
		}
		return m, m.activateFeed(f)
	case "bookmarks":
		return m, m.showCollection(present.BookmarksView)
	case "history":
		return m, m.showCollection(present.HistoryView)
	case "clearhistory":
		return m, m.applyUpdate(m.ctl.ClearHistory())
	case "refresh":
		return m, m.refresh()
	case "more":
		return m, m.loadMore()
	case "search", "filter":
		return m, m.setQuery(arg)
	case "theme":
		if arg == "" {
			return m, m.info("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", "))
		}
		if !theme.Set(arg) {
			return m, m.info("Unknown theme: %s (available: %s)", arg, strings.Join(theme.List(), ", "))
		}
		m.restyle()
		return m, m.info("Theme: %s", arg)
	case "link":
		return m, m.followLink(arg)
	case "open":
		if arg == "" {
			return m, m.info("Usage: :open <url>")
		}
		r := m.reader
		m.trail.Clear()
		return m, m.loadReader(func(ctx context.Context, width int) (*reader.Page, error) {
			return r.Article(ctx, arg, width)
		})
	case "help":
		m.showHelp()
		return m, nil
	}

	if f, ok := hn.ParseFeed(parts[0]); ok {
		return m, m.activateFeed(f)
	}
	return m, m.info("Unknown command: %s", parts[0])
}

func (m *Model) activateFeed(f hn.Feed) tea.Cmd {
	t, err := m.ctl.ActivateFeed(f)
	if errors.Is(err, session.ErrBusy) {
		return nil
	}
	if err != nil {
		return m.info("%v", err)
	}
	m.closeReader()
	m.cards.Reset()
	m.listView.GotoTop()
	return m.startTask(t)
}

func (m *Model) showCollection(v present.View) tea.Cmd {
	var t *controller.Task
	if v == present.BookmarksView {
		t = m.ctl.ShowBookmarks()
	} else {
		t = m.ctl.ShowHistory()
	}
	m.closeReader()
	m.cards.Reset()
	m.listView.GotoTop()
	return m.startTask(t)
}

func (m *Model) selectTab(tab ui.Tab) tea.Cmd {
	if tab.View == present.FeedView {
		return m.activateFeed(tab.Feed)
	}
	return m.showCollection(tab.View)
}

func (m *Model) loadMore() tea.Cmd {
	t, err := m.ctl.LoadMore()
	if err != nil || t == nil {
		return nil
	}
	return m.startTask(t)
}

func (m *Model) refresh() tea.Cmd {
	t, err := m.ctl.Refresh()
	if err != nil {
		return nil
	}
	return m.startTask(t)
}

func (m *Model) setQuery(q string) tea.Cmd {
	m.cards.Reset()
	m.listView.GotoTop()
	return m.applyUpdate(m.ctl.SetQuery(q))
}

// moveSelection moves the cursor. Moving past the last card of a feed
// reveals the next page.
func (m *Model) moveSelection(delta int) tea.Cmd {
	last := m.cards.Index() == len(m.page.Cards)-1
	m.cards.Move(delta)
	m.redrawList()
	if delta > 0 && last && m.page.CanLoadMore {
		return m.loadMore()
	}
	return nil
}

func (m *Model) gotoTop() {
	if m.readerOpen {
		m.readerView.GotoTop()
	} else {
		m.cards.First()
		m.redrawList()
	}
	m.syncScroll()
}

// openSelected records the selected story in the history and reads it.
func (m *Model) openSelected() tea.Cmd {
	c, ok := m.cards.Selected()
	if !ok {
		return nil
	}
	target, u := m.ctl.Open(c.Item)
	logging.Debug("opening story", "id", c.ID, "target", target)
	update := m.applyUpdate(u)
	r, item := m.reader, c.Item
	m.trail.Clear()
	load := m.loadReader(func(ctx context.Context, width int) (*reader.Page, error) {
		return r.Open(ctx, item, width)
	})
	m.statusBar.SetTitle(target)
	return tea.Batch(update, load)
}

// openComments shows the discussion without touching the history.
func (m *Model) openComments() tea.Cmd {
	c, ok := m.cards.Selected()
	if !ok {
		return nil
	}
	r, item := m.reader, c.Item
	m.trail.Clear()
	cmd := m.loadReader(func(ctx context.Context, width int) (*reader.Page, error) {
		return r.Discussion(ctx, item, width)
	})
	m.statusBar.SetTitle(c.CommentsURL)
	return cmd
}

func (m *Model) followLink(arg string) tea.Cmd {
	n, err := strconv.Atoi(arg)
	if err != nil || m.doc == nil {
		return m.info("Usage: :link <n> while reading")
	}
	for _, l := range m.doc.Links {
		if l.Index == n {
			r, url := m.reader, l.URL
			return m.loadReader(func(ctx context.Context, width int) (*reader.Page, error) {
				return r.Article(ctx, url, width)
			})
		}
	}
	return m.info("No link %d", n)
}

// loadReader opens the reader pane and runs load in a command.
func (m *Model) loadReader(load func(ctx context.Context, width int) (*reader.Page, error)) tea.Cmd {
	m.readerSeq++
	m.readerOpen = true
	m.readerLoading = true
	m.doc = nil
	m.readerView.SetContent("\n  Loading...")
	m.setMode(ModeNormal)
	m.syncScroll()

	seq, ctx, width := m.readerSeq, m.ctx, m.width
	return tea.Batch(func() tea.Msg {
		p, err := load(ctx, width)
		return readerLoadedMsg{seq: seq, page: p, err: err}
	}, m.startSpinner())
}

func (m Model) handleReaderLoaded(msg readerLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.readerSeq || !m.readerOpen {
		return m, nil
	}
	m.readerLoading = false
	if msg.err != nil {
		logging.Warn("reader load failed", "err", msg.err)
		errStyle := lipgloss.NewStyle().Foreground(theme.Current.Error).Padding(1, 2)
		m.readerView.SetContent(errStyle.Render("Could not load this page.\n\n" + msg.err.Error()))
		m.syncScroll()
		return m, m.notice(controller.Notice{Kind: controller.Failure, Text: "Failed to load page"})
	}
	m.trail.Push(msg.page.Document)
	m.showDoc(msg.page)
	return m, nil
}

func (m *Model) showDoc(p *reader.Page) {
	m.doc = p
	m.readerView.SetContent(p.Content)
	if p.Title != "" {
		m.statusBar.SetTitle(p.Title)
	}
	m.syncScroll()
}

// stepTrail shows the document step moves to in the reading trail.
func (m *Model) stepTrail(step func() (*reader.Document, bool)) tea.Cmd {
	if m.readerLoading {
		return nil
	}
	doc, ok := step()
	if !ok {
		return m.info("No more pages")
	}
	m.showDoc(m.reader.Render(doc, m.width))
	return nil
}

func (m *Model) closeReader() {
	if !m.readerOpen {
		return
	}
	m.readerOpen = false
	m.readerLoading = false
	m.readerSeq++
	m.doc = nil
	m.trail.Clear()
	m.statusBar.SetTitle(m.page.Title)
	m.setMode(m.mode)
	m.syncScroll()
}

func (m *Model) cycleTheme() tea.Cmd {
	next := theme.Next()
	theme.Set(next)
	m.restyle()
	return m.info("Theme: %s", next)
}

// restyle redraws everything that bakes theme colours into its content.
func (m *Model) restyle() {
	m.redrawList()
	if m.readerOpen && m.doc == nil && !m.readerLoading {
		m.showHelp()
	}
}

// showHelp displays the keybinding reference in the reader pane.
func (m *Model) showHelp() {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary).Width(18)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("devnews Keybindings"))
	sb.WriteString("\n\n")

	for _, s := range m.keys.helpSections() {
		sb.WriteString(sectionStyle.Render(s.name))
		sb.WriteString("\n\n")
		for _, b := range s.bindings {
			h := b.Help()
			sb.WriteString(keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
		}
		sb.WriteString("\n")
	}

	commands := []struct{ k, d string }{
		{":feed <name>", "Switch feed (top/best/new/ask/show/job)"},
		{":bookmarks", "Show bookmarks"},
		{":history", "Show reading history"},
		{":clearhistory", "Clear reading history"},
		{":refresh", "Reload the current view"},
		{":more", "Load the next page"},
		{":search <q>", "Filter by title, author or domain"},
		{":link <n>", "Follow link n in the reader (H/L to go back/forward)"},
		{":open <url>", "Read any article"},
		{":theme <name>", "Change theme"},
		{":quit", "Quit devnews"},
	}
	sb.WriteString(sectionStyle.Render("Commands"))
	sb.WriteString("\n\n")
	for _, c := range commands {
		sb.WriteString(keyStyle.Render(c.k) + descStyle.Render(c.d) + "\n")
	}

	m.readerSeq++
	m.readerOpen = true
	m.readerLoading = false
	m.doc = nil
	m.trail.Clear()
	m.readerView.SetContent(sb.String())
	m.statusBar.SetTitle("Help - Keybindings")
	m.setMode(ModeNormal)
	m.syncScroll()
}
