package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/csheth/lockdam/internal/clock"
	"github.com/csheth/lockdam/internal/content"
	"github.com/csheth/lockdam/internal/logger"
	"github.com/csheth/lockdam/internal/onboarding"
	"github.com/csheth/lockdam/internal/scroll"
	"github.com/csheth/lockdam/internal/source"
	"github.com/csheth/lockdam/internal/theme"
)

// Config wires runtime collaborators into the TUI program. Nil fields get
// working defaults.
type Config struct {
	Site       *content.Site
	Engine     *theme.Engine
	Onboarding *onboarding.Controller
	Excerpts   ExcerptSource
	Logger     *logger.Logger
	Rand       *rand.Rand

	Page         Route
	Debounce     time.Duration
	ExcerptLimit int
	// Timer schedules debounce and animation messages; tests replace it.
	Timer scroll.TimerFunc
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

type model struct {
	config    Config
	site      *content.Site
	engine    *theme.Engine
	onboard   *onboarding.Controller
	jobs      *jobBus
	log       *logger.Logger
	rng       *rand.Rand
	positions *onboarding.Positioner
	layout    pageLayout

	route      Route
	page       *readingPage
	pageSeq    uint64
	mounted    bool
	homeFocus  int
	collection int
	closerOpen bool

	excerpts map[int]string
	loading  map[int]bool

	infoMessage  string
	errorMessage string
}

func newModel(config Config) *model {
	if config.Site == nil {
		site, err := content.Default()
		if err != nil {
			site = &content.Site{}
		}
		config.Site = site
	}
	if config.Rand == nil {
		config.Rand = onboarding.NewRand(0)
	}
	if config.Engine == nil {
		config.Engine = theme.NewEngine(clock.Real{}, theme.Options{Logger: config.Logger})
	}
	if config.Onboarding == nil {
		config.Onboarding = onboarding.New(OnboardingNotes(config.Site), config.Rand, onboarding.Options{})
	}
	if config.Debounce <= 0 {
		config.Debounce = scroll.DefaultWindow
	}
	if config.ExcerptLimit <= 0 {
		config.ExcerptLimit = source.DefaultLimit
	}
	if config.Timer == nil {
		config.Timer = scroll.TeaTimer
	}

	m := &model{
		config:    config,
		site:      config.Site,
		engine:    config.Engine,
		onboard:   config.Onboarding,
		jobs:      newJobBus(config.Logger),
		log:       config.Logger,
		rng:       config.Rand,
		positions: onboarding.NewPositioner(config.Rand),
		layout:    newPageLayout(),
		excerpts:  map[int]string{},
		loading:   map[int]bool{},
	}
	m.navigate(config.Page)
	return m
}

// OnboardingNotes converts the content document's notes.
func OnboardingNotes(site *content.Site) []onboarding.Note {
	notes := make([]onboarding.Note, 0, len(site.Onboarding))
	for _, note := range site.Onboarding {
		notes = append(notes, onboarding.Note{Title: note.Title, Description: note.Description})
	}
	return notes
}

func (m *model) Init() tea.Cmd {
	return m.engine.TickCmd()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)
	case clock.TickMsg:
		m.engine.Tick(msg.Time)
		m.refreshPageIfStale()
		return m, m.engine.TickCmd()
	case scroll.SettleMsg:
		if m.page != nil && msg.Owner == m.page.id {
			m.page.settle(msg)
		}
		return m, nil
	case scroll.FrameMsg:
		if m.page != nil && msg.Owner == m.page.id {
			return m, m.page.step(msg)
		}
		return m, nil
	case jobSignalMsg:
		m.jobs.Track(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.jobs.Track(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case excerptResultMsg:
		return m, m.handleExcerptResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *model) resize(width, height int) tea.Cmd {
	m.layout.Update(width, height)
	if !m.mounted {
		m.mounted = true
		m.onboard.Mount(width)
		m.log.WithFields(map[string]any{
			"width":      width,
			"height":     height,
			"onboarding": m.onboard.Active(),
		}).Info("mounted")
	} else {
		m.onboard.Resize(width)
	}
	if m.page == nil {
		return nil
	}
	m.relayout()
	return m.page.relaid()
}

// navigate tears down the current page and mounts a fresh instance of route.
func (m *model) navigate(route Route) tea.Cmd {
	if m.page != nil {
		m.page.teardown()
		m.page = nil
	}
	m.route = route
	m.closerOpen = false
	m.errorMessage = ""
	m.infoMessage = ""
	m.log.WithFields(map[string]any{"page": route.String()}).Debug("navigate")
	if route == RouteHome {
		return nil
	}

	m.pageSeq++
	var shelf []int
	if route == RouteLitReview {
		shelf = spineHeights(m.rng, len(m.site.LitReview.Books))
	}
	m.page = newReadingPage(m.pageSeq, route, m.config.Debounce, m.config.Timer, shelf)
	if !m.mounted {
		return nil
	}
	m.relayout()
	return m.page.relaid()
}

// spineHeights draws one shelf height per book, in rows.
func spineHeights(rng *rand.Rand, n int) []int {
	heights := make([]int, n)
	for i := range heights {
		heights[i] = minSpineHeight + rng.IntN(maxSpineHeight-minSpineHeight+1)
	}
	return heights
}

// relayout rebuilds the current page body for the current size and palette.
func (m *model) relayout() {
	if m.page == nil {
		return
	}
	pal := m.palette()
	body := m.buildBody(m.page.route, pal)
	lines, spans := body.render(m.layout.bodyHeight, "")
	m.page.setBody(lines, spans, m.layout.bodyWidth, m.layout.bodyHeight, pal.Theme)
}

// refreshPageIfStale re-renders after a palette change. Line counts do not
// depend on the palette, so no recompute is needed.
func (m *model) refreshPageIfStale() {
	if m.page == nil || !m.mounted {
		return
	}
	if m.page.theme != m.engine.Resolved() {
		m.relayout()
	}
}

func (m *model) palette() theme.Palette {
	return theme.PaletteFor(m.engine.Resolved())
}

func (m *model) gating() bool {
	return m.onboard.Gating()
}

func (m *model) currentCollection() (content.Collection, bool) {
	if len(m.site.Artifacts) == 0 {
		return content.Collection{}, false
	}
	idx := m.collection % len(m.site.Artifacts)
	return m.site.Artifacts[idx], true
}

func (m *model) quit() tea.Cmd {
	if m.page != nil {
		m.page.teardown()
	}
	m.engine.Close()
	m.log.Info("quit")
	return tea.Quit
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, m.quit()
	}
	if m.gating() {
		return m, m.handleOnboardingKey(key)
	}
	if m.closerOpen {
		switch key.String() {
		case "esc", "enter", "backspace", " ":
			m.closerOpen = false
		}
		return m, nil
	}

	switch key.String() {
	case "t":
		mode := m.engine.Cycle()
		m.refreshPageIfStale()
		m.infoMessage = fmt.Sprintf("Theme: %s", mode)
		return m, nil
	case "esc", "backspace":
		if m.route != RouteHome {
			return m, m.navigate(RouteHome)
		}
		return m, nil
	}

	if m.route == RouteHome {
		return m, m.handleHomeKey(key)
	}
	return m, m.handlePageKey(key)
}

func (m *model) handleOnboardingKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "tab", "right", "down":
		m.onboard.FocusNext()
	case "shift+tab", "left", "up":
		m.onboard.FocusPrev()
	case "enter", "x", " ":
		m.dismissPopup(m.onboard.Focused())
	default:
		if idx, ok := digitIndex(key); ok {
			m.dismissPopup(idx)
		}
	}
	return nil
}

func (m *model) dismissPopup(index int) {
	if !m.onboard.Dismiss(index) {
		return
	}
	m.log.WithFields(map[string]any{
		"popup":     index,
		"dismissed": m.onboard.DismissedCount(),
		"total":     m.onboard.Total(),
	}).Debug("onboarding popup dismissed")
	if m.onboard.HasSeen() {
		m.log.Info("onboarding complete")
		m.infoMessage = "Welcome in. Press t to change the theme."
	}
}

func (m *model) handleHomeKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k", "shift+tab":
		m.homeFocus = (m.homeFocus + len(homeLinks) - 1) % len(homeLinks)
	case "down", "j", "tab":
		m.homeFocus = (m.homeFocus + 1) % len(homeLinks)
	case "enter", "right", "l":
		return m.navigate(homeLinks[m.homeFocus].route)
	default:
		if idx, ok := digitIndex(key); ok && idx < len(homeLinks) {
			m.homeFocus = idx
			return m.navigate(homeLinks[idx].route)
		}
	}
	return nil
}

func (m *model) handlePageKey(key tea.KeyMsg) tea.Cmd {
	p := m.page
	if p == nil {
		return nil
	}
	switch key.String() {
	case "up", "k":
		return p.scrollBy(-1)
	case "down", "j":
		return p.scrollBy(1)
	case "pgup", "b", "ctrl+u":
		return p.scrollBy(-p.viewport.Height)
	case "pgdown", "f", " ", "ctrl+d":
		return p.scrollBy(p.viewport.Height)
	case "home", "g":
		return p.scrollTo(0)
	case "end", "G":
		return p.scrollTo(p.maxOffset())
	case "[":
		return p.jump(p.tracker.Active() - 1)
	case "]":
		return p.jump(p.tracker.Active() + 1)
	case "o":
		if p.route == RouteLitReview {
			return m.requestExcerpt(p.tracker.Active())
		}
	case "l":
		if p.route == RouteArtifacts {
			m.closerOpen = true
		}
	case "c":
		if p.route == RouteArtifacts && len(m.site.Artifacts) > 1 {
			m.collection = (m.collection + 1) % len(m.site.Artifacts)
			return m.navigate(RouteArtifacts)
		}
	default:
		if idx, ok := digitIndex(key); ok {
			return p.jump(idx)
		}
	}
	return nil
}

// digitIndex maps keys 1-9 onto indexes 0-8.
func digitIndex(key tea.KeyMsg) (int, bool) {
	s := key.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

func (m *model) requestExcerpt(book int) tea.Cmd {
	books := m.site.LitReview.Books
	if book < 0 || book >= len(books) {
		return nil
	}
	entry := books[book]
	switch {
	case strings.TrimSpace(entry.SourcePDF) == "":
		m.infoMessage = fmt.Sprintf("No source document for %s.", entry.Title)
		return nil
	case m.config.Excerpts == nil:
		m.infoMessage = "Source excerpts are unavailable in this session."
		return nil
	case m.loading[book]:
		return nil
	case m.excerpts[book] != "":
		m.infoMessage = fmt.Sprintf("Excerpt for %s is already shown.", entry.Title)
		return nil
	}
	m.loading[book] = true
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Loading source for %s…", entry.Title)
	job := m.jobs.Start(jobKindExcerpt, excerptJob(m.config.Excerpts, book, entry, m.config.ExcerptLimit))
	return tea.Batch(job, m.relayoutCurrent())
}

func (m *model) handleExcerptResult(msg excerptResultMsg) tea.Cmd {
	delete(m.loading, msg.book)
	title := ""
	if msg.book >= 0 && msg.book < len(m.site.LitReview.Books) {
		title = m.site.LitReview.Books[msg.book].Title
	}
	if msg.err != nil {
		m.log.Error(msg.err, "source excerpt failed")
		m.errorMessage = fmt.Sprintf("excerpt error: %v", msg.err)
		m.infoMessage = ""
	} else {
		m.excerpts[msg.book] = msg.text
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Loaded source excerpt for %s.", title)
	}
	if m.page != nil && m.page.route == RouteLitReview {
		return m.relayoutCurrent()
	}
	return nil
}

// relayoutCurrent rebuilds the page after a content change and schedules the
// recompute that follows any layout change.
func (m *model) relayoutCurrent() tea.Cmd {
	if m.page == nil || !m.mounted {
		return nil
	}
	m.relayout()
	return m.page.relaid()
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	if m.gating() {
		if press {
			if idx, ok := hitAt(m.popupZones(), msg.X, msg.Y); ok {
				m.dismissPopup(idx)
			}
		}
		return nil
	}
	if m.closerOpen {
		if press {
			m.closerOpen = false
		}
		return nil
	}

	if m.route == RouteHome {
		if !press {
			return nil
		}
		_, zones := m.homeView(m.palette())
		if idx, ok := hitAt(zones, msg.X, msg.Y); ok {
			m.homeFocus = idx
			return m.navigate(homeLinks[idx].route)
		}
		return nil
	}

	p := m.page
	if p == nil {
		return nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return p.scrollBy(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		return p.scrollBy(3)
	case !press:
		return nil
	case msg.Y < headerHeight:
		if msg.X < ansi.StringWidth(returnHomeLabel)+1 {
			return m.navigate(RouteHome)
		}
		return nil
	}
	if msg.X >= m.layout.sidebarWidth {
		return nil
	}
	_, zones := m.sidebar(m.palette())
	idx, ok := hitAt(zones, msg.X, msg.Y-headerHeight)
	switch {
	case !ok:
		return nil
	case idx == closerZone:
		m.closerOpen = true
		return nil
	default:
		return p.jump(idx)
	}
}
