package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/folio/pkg/chat"
	"gitlab.com/tinyland/lab/folio/pkg/components"
	"gitlab.com/tinyland/lab/folio/pkg/config"
	"gitlab.com/tinyland/lab/folio/pkg/content"
	"gitlab.com/tinyland/lab/folio/pkg/gateway"
	"gitlab.com/tinyland/lab/folio/pkg/reveal"
	"gitlab.com/tinyland/lab/folio/pkg/scroll"
	"gitlab.com/tinyland/lab/folio/pkg/theme"
	"gitlab.com/tinyland/lab/folio/pkg/typewriter"
	"gitlab.com/tinyland/lab/folio/pkg/visibility"
)

// Section ids, in page order.
const (
	sectionHero     = "hero"
	sectionWork     = "work"
	sectionStack    = "stack"
	sectionProjects = "projects"
	sectionChat     = "chat"
)

var sectionOrder = []string{sectionHero, sectionWork, sectionStack, sectionProjects, sectionChat}

// Visible fraction at which each section plays its entrance.
const (
	heroThreshold    = 0.3
	sectionThreshold = 0.2
)

const inViewClass = "in-view"

const (
	dismissZone = "bar:dismiss"
	menuZone    = "header:menu"
)

type barState int

const (
	barOpen barState = iota
	barClosing
	barClosed
)

// section is a page region the viewport measures.
type section struct {
	id      string
	classes map[string]bool
}

func (s *section) ID() string { return s.id }

func (s *section) SetClass(name string, on bool) { s.classes[name] = on }

func (s *section) HasClass(name string) bool { return s.classes[name] }

// Options configures NewAppModel. Zero values fall back to defaults.
type Options struct {
	Config  *config.Config
	Content *content.Content
	Asker   chat.Asker
	Profile termenv.Profile
	// Theme defaults to the palette named by Config.General.Theme.
	Theme *theme.Theme
	// Hyperlinks enables OSC 8 links in answers and the hero.
	Hyperlinks bool
	Clock      clockwork.Clock
	Logger     *slog.Logger
}

// AppModel is the root bubbletea model.
type AppModel struct {
	content    *content.Content
	styles     components.Styles
	links      chat.Links
	hyperlinks bool
	plain      bool
	clock      clockwork.Clock
	logger     *slog.Logger

	frameInterval time.Duration
	staggerStep   time.Duration

	width  int
	height int

	ctx      context.Context
	cancel   context.CancelFunc
	activity chan struct{}

	viewport *visibility.Viewport
	page     *page
	frames   *frameQueue
	tracker  *scroll.Tracker
	framing  bool

	sections map[string]*section
	bindings []*gateway.Binding

	typer         *typewriter.Animator
	work          *reveal.Board
	workLead      *gateway.Flag
	workTail      *gateway.Flag
	stackShown    *gateway.Flag
	projectsShown *gateway.Flag

	chat   *chat.Controller
	input  textinput.Model
	typing bool

	navFocus int
	project  int
	overlay  bool
	help     bool
	bar      barState
	quitting bool

	zones *zone.Manager
	lines []string
}

// NewAppModel builds the page and binds every section's entrance to the
// viewport. Nothing animates until the first WindowSizeMsg gives the
// viewport a height.
func NewAppModel(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := opts.Content
	if c == nil {
		var err error
		if c, err = content.Default(); err != nil {
			logger.Error("embedded content unreadable", "error", err)
			c = &content.Content{}
		}
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	palette := theme.Get(cfg.General.Theme)
	if opts.Theme != nil {
		palette = *opts.Theme
	}

	frameRate := cfg.Scroll.FrameRate
	if frameRate <= 0 {
		frameRate = 60
	}
	rowUnits := cfg.Scroll.RowUnits
	if rowUnits <= 0 {
		rowUnits = 20
	}

	ctx, cancel := context.WithCancel(context.Background())
	activity := make(chan struct{}, 1)
	notify := func() {
		select {
		case activity <- struct{}{}:
		default:
		}
	}

	pg := newPage(rowUnits, frameRate)
	frames := &frameQueue{}
	tracker := scroll.NewTracker(scroll.Config{
		HideThreshold: cfg.Scroll.HideThreshold,
		SettleEpsilon: cfg.Scroll.SettleEpsilon,
		SettleDelay:   cfg.Scroll.SettleDelay.Duration,
	}, pg, frames, clock, logger.With("component", "scroll"))

	timing := typewriter.Timing{
		Type:  cfg.Animation.TypeDelay.Duration,
		Erase: cfg.Animation.EraseDelay.Duration,
		Hold:  cfg.Animation.Hold.Duration,
		Loop:  cfg.Animation.Loop,
	}

	steps := 0
	for _, w := range c.Work {
		steps += len(w.Timeline)
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Ask me anything about my work"
	input.CharLimit = 280

	m := AppModel{
		content: c,
		styles:  components.NewStyles(opts.Profile, palette),
		links: chat.Links{
			GitHub:   c.Links.GitHub,
			LinkedIn: c.Links.LinkedIn,
			Email:    c.Links.Email,
		},
		hyperlinks:    opts.Hyperlinks,
		clock:         clock,
		logger:        logger,
		frameInterval: time.Second / time.Duration(frameRate),
		staggerStep:   cfg.Animation.Stagger.Duration,
		ctx:           ctx,
		cancel:        cancel,
		activity:      activity,
		viewport:      visibility.NewViewport(),
		page:          pg,
		frames:        frames,
		tracker:       tracker,
		sections:      make(map[string]*section, len(sectionOrder)),
		typer:         typewriter.NewAnimator(clock, timing, func(string) { notify() }, logger.With("component", "typewriter")),
		work:          reveal.NewBoard(steps, notify),
		workLead:      &gateway.Flag{},
		workTail:      &gateway.Flag{},
		stackShown:    &gateway.Flag{},
		projectsShown: &gateway.Flag{},
		chat:          chat.NewController(opts.Asker, logger.With("component", "chat")),
		input:         input,
		zones:         zone.New(),
	}
	for _, id := range sectionOrder {
		m.sections[id] = &section{id: id, classes: make(map[string]bool)}
	}
	m.bind()
	return m
}

func (m *AppModel) bind() {
	vopts := []visibility.Option{visibility.WithLogger(m.logger)}
	m.bindings = []*gateway.Binding{
		gateway.Bind(m.viewport, m.sections[sectionHero], heroThreshold, vopts,
			gateway.StartTyping(m.ctx, m.typer, m.content.Roles)),
		gateway.Bind(m.viewport, m.sections[sectionWork], sectionThreshold, vopts,
			gateway.Stagger(m.clock, m.staggerStep, reveal.Set{
				Lead:  reveal.RevealFunc(m.workLead.Set),
				Cards: m.work.Items(),
				Tail:  reveal.RevealFunc(m.workTail.Set),
			})),
		gateway.Bind(m.viewport, m.sections[sectionStack], sectionThreshold, vopts,
			gateway.Flip(m.stackShown)),
		gateway.Bind(m.viewport, m.sections[sectionProjects], sectionThreshold, vopts,
			gateway.Flip(m.projectsShown)),
		gateway.Bind(m.viewport, m.sections[sectionChat], sectionThreshold,
			append(vopts, visibility.WithClass(inViewClass))),
	}
}

// Close tears down every binding and cancels running animations and
// requests.
func (m AppModel) Close() {
	for _, b := range m.bindings {
		b.Teardown()
	}
	m.typer.Cancel()
	m.cancel()
	m.zones.Close()
}

// Init starts listening for background animation activity.
func (m AppModel) Init() tea.Cmd {
	return waitForActivity(m.activity)
}

// Update handles terminal input, frames, animation activity and chat
// results.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.page.cols = msg.Width
		m.input.Width = max(m.contentWidth()-4, 8)
		m.refresh()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case FrameEvent:
		cmd = m.onFrame()

	case ActivityEvent:
		m.refresh()
		cmd = waitForActivity(m.activity)

	case ChatResultEvent:
		if m.chat.Complete(msg.Result) {
			m.followChat()
		}

	case actionBarClosedEvent:
		m.bar = barClosed
		m.refresh()

	default:
		if m.typing {
			m.input, cmd = m.input.Update(msg)
		}
	}

	return m, cmd
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}
	if m.typing {
		return m.handleInputKey(msg)
	}
	if m.overlay || m.help {
		switch msg.String() {
		case "esc", "o", "q", "enter", "?":
			m.overlay = false
			m.help = false
		}
		return nil
	}

	var cmd tea.Cmd
	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit
	case "?":
		m.help = true
	case "j", "down":
		m.scrollBy(1)
	case "k", "up":
		m.scrollBy(-1)
	case "pgdown", " ":
		m.scrollBy(m.bodyHeight() - 1)
	case "pgup":
		m.scrollBy(-(m.bodyHeight() - 1))
	case "g", "home":
		m.scrollToRow(0)
	case "G", "end":
		m.scrollToRow(len(m.lines))
	case "tab":
		m.CycleFocusForward()
	case "shift+tab":
		m.CycleFocusBackward()
	case "enter":
		m.Navigate(m.FocusedNavID())
		cmd = m.startFrames()
	case "m":
		m.tracker.ToggleMenu()
	case "esc":
		m.tracker.CloseMenu()
	case "/", "i":
		m.Navigate(sectionChat)
		m.typing = true
		cmd = tea.Batch(m.input.Focus(), m.startFrames())
	case "x":
		cmd = m.dismissActionBar()
	case "]", "right":
		m.selectProject(1)
	case "[", "left":
		m.selectProject(-1)
	case "o":
		if m.projectsShown.On() && len(m.content.Projects) > 0 {
			m.overlay = true
		}
	}
	m.refresh()
	return cmd
}

func (m *AppModel) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.chat.SetInput(m.input.Value())
		req, ok := m.chat.Submit()
		if !ok {
			return nil
		}
		m.input.Reset()
		m.followChat()
		return AskCmd(m.ctx, req)
	case tea.KeyEsc:
		m.typing = false
		m.input.Blur()
		m.refresh()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return cmd
}

func (m *AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.overlay || m.help {
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			m.overlay = false
			m.help = false
		}
		return nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(3)
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-3)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		return m.click(msg)
	}
	return nil
}

func (m *AppModel) click(msg tea.MouseMsg) tea.Cmd {
	for _, it := range navItems {
		if m.inZone(navZone(it.ID), msg) || m.inZone(menuItemZone(it.ID), msg) {
			m.Navigate(it.ID)
			return m.startFrames()
		}
	}
	if m.inZone(menuZone, msg) {
		m.tracker.ToggleMenu()
		m.refresh()
		return nil
	}
	if m.inZone(dismissZone, msg) {
		return m.dismissActionBar()
	}
	for i := range m.content.Projects {
		if m.inZone(projectZone(i), msg) {
			m.project = i
			m.overlay = true
			m.refresh()
			return nil
		}
	}
	return nil
}

func (m *AppModel) inZone(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

// onFrame advances the smooth scroll one step and runs the callbacks
// queued for this frame, the scroll tracker's settle poll among them.
func (m *AppModel) onFrame() tea.Cmd {
	moving := m.page.step()
	m.frames.run()
	m.tracker.OnScroll(m.page.ScrollY())
	m.refresh()

	if moving || m.frames.pending() {
		return FrameCmd(m.frameInterval)
	}
	m.framing = false
	return nil
}

func (m *AppModel) startFrames() tea.Cmd {
	m.refresh()
	if m.framing {
		return nil
	}
	m.framing = true
	return FrameCmd(m.frameInterval)
}

func (m *AppModel) scrollBy(rows int) {
	m.page.Jump(rows)
	m.tracker.OnScroll(m.page.ScrollY())
	m.refresh()
}

func (m *AppModel) scrollToRow(row int) {
	m.page.JumpTo(float64(row) * m.page.rowUnits)
	m.tracker.OnScroll(m.page.ScrollY())
	m.refresh()
}

// followChat keeps the newest transcript lines and the input in view.
func (m *AppModel) followChat() {
	m.refresh()
	if m.typing {
		m.scrollToRow(len(m.lines))
	}
}

func (m *AppModel) dismissActionBar() tea.Cmd {
	if m.bar != barOpen {
		return nil
	}
	m.bar = barClosing
	m.refresh()
	return closeActionBarCmd()
}

func (m *AppModel) selectProject(delta int) {
	n := len(m.content.Projects)
	if n == 0 {
		return
	}
	m.project = (m.project + delta + n) % n
}

// refresh re-lays the page out, feeds the new scroll position to the
// viewport and lays out again, since a section that just became visible
// may have changed what it shows.
func (m *AppModel) refresh() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.layout()
	m.page.SetMaxRow(len(m.lines) - m.bodyHeight())
	m.viewport.Scroll(m.page.Row(), m.bodyHeight())
	m.layout()
}

// layout renders every section and records where each one sits.
func (m *AppModel) layout() {
	w := m.contentWidth()
	margin := max((m.width-w)/2, 0)

	var lines []string
	for _, id := range sectionOrder {
		block := components.Indent(m.renderSection(id, w), margin)
		rows := strings.Split(block, "\n")
		top := len(lines)
		m.viewport.Place(id, visibility.Bounds{Top: top, Height: len(rows)})
		m.page.elements[id] = top
		lines = append(lines, rows...)
	}
	m.lines = lines
}

func (m AppModel) contentWidth() int {
	return max(min(m.width-2, 96), 10)
}

func (m AppModel) narrow() bool {
	return m.page.Width() < scroll.DefaultMobileBreakpoint
}

func (m AppModel) headerRows() int {
	if m.plain || m.tracker.Hidden() {
		return 0
	}
	if m.tracker.MenuOpen() {
		return 1 + len(navItems)
	}
	return 1
}

func (m AppModel) barRows() int {
	if m.plain || m.bar == barClosed {
		return 0
	}
	return 1
}

func (m AppModel) bodyHeight() int {
	return max(m.height-m.headerRows()-m.barRows(), 1)
}

// View assembles the header, the visible slice of the page and the action
// bar.
func (m AppModel) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	var rows []string
	if m.headerRows() > 0 {
		rows = append(rows, m.renderHeader())
		if m.tracker.MenuOpen() {
			rows = append(rows, m.renderMenu()...)
		}
	}

	h := m.bodyHeight()
	switch {
	case m.help:
		rows = append(rows, lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.renderHelp()))
	case m.overlay:
		rows = append(rows, lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.renderOverlay()))
	default:
		start := min(m.page.Row(), len(m.lines))
		end := min(start+h, len(m.lines))
		body := append([]string(nil), m.lines[start:end]...)
		for len(body) < h {
			body = append(body, "")
		}
		rows = append(rows, body...)
	}

	if m.barRows() > 0 {
		rows = append(rows, m.renderActionBar())
	}
	return m.zones.Scan(strings.Join(rows, "\n"))
}

// Width returns the terminal width.
func (m AppModel) Width() int { return m.width }

// Height returns the terminal height.
func (m AppModel) Height() int { return m.height }

// Row returns the first page row in view.
func (m AppModel) Row() int { return m.page.Row() }

// HeaderHidden reports whether the header is currently hidden.
func (m AppModel) HeaderHidden() bool { return m.tracker.Hidden() }

// Typing reports whether the chat input has focus.
func (m AppModel) Typing() bool { return m.typing }

// OverlayOpen reports whether a project detail overlay is shown.
func (m AppModel) OverlayOpen() bool { return m.overlay }

// HelpVisible reports whether the key help overlay is shown.
func (m AppModel) HelpVisible() bool { return m.help }

// Quitting reports whether the user asked to quit.
func (m AppModel) Quitting() bool { return m.quitting }

// Transcript returns the chat transcript.
func (m AppModel) Transcript() []chat.Message { return m.chat.Transcript() }

// SectionTop returns the first page row of a section.
func (m AppModel) SectionTop(id string) (int, bool) {
	row, ok := m.page.elements[id]
	return row, ok
}

// Animating reports whether a smooth scroll is in progress.
func (m AppModel) Animating() bool { return m.page.animating }
