package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/debounce"
	"github.com/sqmw/repofolio/internal/derive"
	"github.com/sqmw/repofolio/internal/i18n"
	"github.com/sqmw/repofolio/internal/loader"
	"github.com/sqmw/repofolio/internal/state"
)

// Loader is the slice of *loader.Loader the UI needs.
type Loader interface {
	Load(ctx context.Context) (loader.Result, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Loader    Loader
	Snapshots derive.SnapshotStore
	Logger    *zap.Logger

	// User owns the listed repositories; star-history links use it.
	User           string
	TopLimit       int
	LanguageLimit  int
	SearchDebounce time.Duration

	// OnStart receives the program's Send once the program exists, so
	// background producers such as the refresh poller can deliver messages.
	OnStart func(send func(tea.Msg))
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	loader   Loader
	snaps    derive.SnapshotStore
	logger   *zap.Logger
	user     string
	topLimit int

	// Components
	keys      keyMap
	help      help.Model
	search    textinput.Model
	spinner   spinner.Model
	debouncer *debounce.Debouncer[string]
	session   *session

	// UI state
	width    int
	height   int
	ready    bool
	showHelp bool
	cursor   int

	// Load state
	loading   bool
	loadErr   error
	fromCache bool
	cachedAt  time.Time
	trending  []derive.Trend
}

// New creates a new Bubble Tea model and subscribes it to the store.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = state.New(state.Default())
	}

	sess := newSession(opts.TopLimit, opts.LanguageLimit)
	sess.unsubscribe = store.Subscribe(sess.refresh)
	sess.refresh(store.Get())

	st := store.Get()
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = i18n.For(st.Locale).T(i18n.SearchPlaceholder)
	search.CharLimit = 100
	search.SetValue(st.Query)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		store:    store,
		loader:   opts.Loader,
		snaps:    opts.Snapshots,
		logger:   logger,
		user:     opts.User,
		topLimit: opts.TopLimit,

		keys:    DefaultKeyMap(),
		help:    help.New(),
		search:  search,
		spinner: spin,
		debouncer: debounce.New(opts.SearchDebounce, func(q string) {
			sess.dispatch(queryCommittedMsg(q))
		}),
		session: sess,

		loading: opts.Loader != nil,
	}
}

// Bind connects the model's background producers to a running program.
func (m Model) Bind(send func(tea.Msg)) {
	m.session.bind(send)
}

// Close stops the debouncer and detaches from the store.
func (m Model) Close() {
	m.debouncer.Stop()
	m.session.close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(10, msg.Width-4)
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		m.applyLoad(msg)
		return m, nil

	case queryCommittedMsg:
		m.commitQuery(string(msg))
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	d := m.session.current()
	pr := i18n.For(d.state.Locale)
	if !m.ready {
		return pr.T(i18n.Loading)
	}

	theme := GetTheme(d.state.Theme)
	if m.showHelp {
		return m.renderHelp(theme)
	}
	return m.renderMain(theme, pr, d)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	st := m.store.Get()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.debouncer.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		if m.loading || m.loader == nil {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case key.Matches(msg, m.keys.CycleSort):
		m.store.Set(state.WithSort(st.Sort.Next()))
		m.cursor = 0

	case key.Matches(msg, m.keys.ToggleView):
		next := state.ViewList
		if st.View == state.ViewList {
			next = state.ViewGrid
		}
		m.store.Set(state.WithView(next))

	case key.Matches(msg, m.keys.ToggleTheme):
		m.store.Set(state.WithTheme(st.Theme.Toggle()))

	case key.Matches(msg, m.keys.ToggleLocale):
		next := st.Locale.Toggle()
		m.store.Set(state.WithLocale(next))
		m.search.Placeholder = i18n.For(next).T(i18n.SearchPlaceholder)

	case key.Matches(msg, m.keys.NextLanguage):
		m.stepLanguage(st, 1)

	case key.Matches(msg, m.keys.PrevLanguage):
		m.stepLanguage(st, -1)

	case key.Matches(msg, m.keys.ClearFilters):
		m.debouncer.Stop()
		m.search.SetValue("")
		m.store.Set(state.WithQuery(""), state.WithLanguage(state.AllLanguages))
		m.cursor = 0

	default:
		m.moveCursor(msg, st.View)
	}
	return m, nil
}

// handleSearchKey feeds the search input. Every edit restarts the debounce
// window; enter and esc commit immediately.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.debouncer.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Cancel):
		m.debouncer.Stop()
		m.commitQuery(m.search.Value())
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.debouncer.Trigger(value)
	}
	return m, cmd
}

func (m *Model) commitQuery(q string) {
	m.store.Set(state.WithQuery(q))
	m.cursor = 0
}

// languageChips returns the chip values: "all" then the ranked languages.
func languageChips(stats []derive.LanguageStat) []string {
	chips := make([]string, 0, len(stats)+1)
	chips = append(chips, state.AllLanguages)
	for _, s := range stats {
		chips = append(chips, s.Name)
	}
	return chips
}

func (m *Model) stepLanguage(st state.State, step int) {
	chips := languageChips(m.session.current().languages)
	idx := 0
	for i, c := range chips {
		if c == st.Language {
			idx = i
			break
		}
	}
	next := (idx + step + len(chips)) % len(chips)
	m.store.Set(state.WithLanguage(chips[next]))
	m.cursor = 0
}

func (m *Model) moveCursor(msg tea.KeyMsg, view state.View) {
	count := m.session.current().listing.Count
	if count == 0 {
		m.cursor = 0
		return
	}
	stride := 1
	if view == state.ViewGrid {
		stride = m.gridColumns()
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor -= stride
	case key.Matches(msg, m.keys.Down):
		m.cursor += stride
	case key.Matches(msg, m.keys.Left):
		if view == state.ViewGrid {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if view == state.ViewGrid {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = count - 1
	}
	m.cursor = clamp(m.cursor, 0, count-1)
}

// applyLoad records a load outcome. A failed load keeps the previous list.
func (m *Model) applyLoad(msg LoadedMsg) {
	m.loading = false
	if msg.Err != nil {
		m.loadErr = msg.Err
		m.logger.Warn("load failed", zap.Error(msg.Err))
		return
	}

	res := msg.Result
	m.store.Set(state.WithProjects(res.Projects))
	m.fromCache = res.FromCache
	m.cachedAt = res.CachedAt
	m.loadErr = res.Err

	if m.snaps != nil {
		trends, err := derive.Trending(res.Projects, m.snaps, m.topLimit)
		if err != nil {
			m.logger.Warn("star snapshot save failed", zap.Error(err))
		}
		m.trending = trends
	}
	m.cursor = clamp(m.cursor, 0, max(0, m.session.current().listing.Count-1))
}

func (m Model) loadCmd() tea.Cmd {
	ld := m.loader
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, LoadTimeout)
		defer cancel()
		res, err := ld.Load(ctx)
		return LoadedMsg{Result: res, Err: err}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Messages

// LoadedMsg delivers the outcome of a repository load to the model.
type LoadedMsg struct {
	Result loader.Result
	Err    error
}

type queryCommittedMsg string

// Run starts the Bubble Tea program and blocks until it exits. Cancelling
// opts.Context ends the program without error.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	m.Bind(p.Send)
	if opts.OnStart != nil {
		opts.OnStart(p.Send)
	}

	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
