package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/history"
	"github.com/mmcdole/pixa/internal/opener"
	"github.com/mmcdole/pixa/internal/paging"
	"github.com/mmcdole/pixa/internal/trigger"
	"github.com/mmcdole/pixa/internal/tui/components"
)

// Layout constants
const (
	HeaderHeight    = 1
	SearchBarHeight = 3
	FooterHeight    = 2

	// DefaultFetchTimeout bounds one page request when none is configured
	DefaultFetchTimeout = 30 * time.Second

	tickInterval = 100 * time.Millisecond
)

// Focus is the part of the screen receiving keys
type Focus int

const (
	FocusSearch Focus = iota
	FocusGallery
)

// Deps holds what the model needs from the outside
type Deps struct {
	Controller   *paging.Controller
	Trigger      trigger.Trigger
	Notices      <-chan domain.Notice
	History      *history.Store // optional
	Opener       *opener.Opener // optional
	FetchTimeout time.Duration
	PrefetchRows int
	InitialQuery string // submitted on start when set
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool
	Focus Focus

	// Services
	Controller   *paging.Controller
	Trigger      trigger.Trigger
	Notices      <-chan domain.Notice
	History      *history.Store
	Opener       *opener.Opener
	FetchTimeout time.Duration
	initialQuery string
	logger       *slog.Logger

	// UI Components
	Gallery   components.Gallery
	SearchBar components.SearchBar
	Toasts    components.Toasts

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowHelp     bool

	// last sentinel visibility seen by the auto trigger
	sentinelVisible bool

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = DefaultFetchTimeout
	}

	var suggest components.SuggestFunc
	if deps.History != nil {
		suggest = deps.History.Suggest
	}

	m := Model{
		Focus:        FocusSearch,
		Controller:   deps.Controller,
		Trigger:      deps.Trigger,
		Notices:      deps.Notices,
		History:      deps.History,
		Opener:       deps.Opener,
		FetchTimeout: deps.FetchTimeout,
		initialQuery: deps.InitialQuery,
		logger:       deps.Logger,
		Gallery:      components.NewGallery(deps.PrefetchRows),
		SearchBar:    components.NewSearchBar(suggest),
		now:          time.Now,
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.SearchBar.Focus(),
		TickCmd(tickInterval),
	}
	if m.Notices != nil {
		cmds = append(cmds, WaitForNoticeCmd(m.Notices))
	}
	if m.initialQuery != "" {
		q := m.initialQuery
		cmds = append(cmds, func() tea.Msg { return SubmitMsg{Query: q} })
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.observeSentinel(false)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case SubmitMsg:
		return m.submit(msg.Query)

	case PageFetchedMsg:
		return m.handlePageFetched(msg)

	case NoticeMsg:
		id := m.Toasts.Push(msg.Notice, m.now())
		m.updateLayout()
		timeout := msg.Notice.Timeout
		if timeout <= 0 {
			timeout = domain.NoticeTimeout
		}
		return m, tea.Batch(
			ClearToastCmd(id, timeout),
			WaitForNoticeCmd(m.Notices),
		)

	case ClearToastMsg:
		m.Toasts.Dismiss(msg.ID)
		m.updateLayout()
		return m, m.observeSentinel(false)

	case PhotoOpenedMsg:
		m.StatusMsg = "Opened " + msg.Photo.PageURL
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case HistoryRecordedMsg:
		return m, nil

	case ErrMsg:
		m.logger.Error("tui error", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handlePageFetched applies a fetch outcome and lets the trigger settle
func (m Model) handlePageFetched(msg PageFetchedMsg) (tea.Model, tea.Cmd) {
	u := m.Controller.Resolve(msg.Outcome)
	m.Trigger.Settle(msg.Outcome)

	if u.Stale || u.Err != nil {
		return m, nil
	}

	if u.Reset {
		m.Gallery.SetPhotos(u.Photos)
	} else {
		m.Gallery.Append(u.Photos)
	}
	m.updateLayout()

	// New cards move the sentinel, so observe it afresh
	return m, m.observeSentinel(true)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKeys(msg)
	}
	if m.Gallery.FilterActive() {
		return m.handleFilterKeys(msg)
	}
	return m.handleGalleryKeys(msg)
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Escape) {
		if m.Gallery.Len() > 0 {
			m.focusGallery()
		}
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
	m.updateLayout()
	if !submitted {
		return m, cmd
	}
	return m.submit(m.SearchBar.Value())
}

// submit starts a new search. Invalid queries only produce a notice.
func (m Model) submit(raw string) (tea.Model, tea.Cmd) {
	f, err := m.Controller.Submit(raw)
	if err != nil {
		return m, nil
	}

	m.Trigger.Reset()
	m.sentinelVisible = false
	m.Gallery.Clear()
	m.SearchBar.Reset()
	m.focusGallery()

	return m, tea.Batch(
		FetchPageCmd(m.Controller, f, m.FetchTimeout),
		RecordHistoryCmd(m.History, f.Request.Query),
	)
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape), msg.String() == "enter":
		m.Gallery.StopFilter()
		m.updateLayout()
		return m, m.observeSentinel(false)
	case msg.String() == "up", msg.String() == "down":
		if msg.String() == "up" {
			m.Gallery.MoveCursor(-1)
		} else {
			m.Gallery.MoveCursor(1)
		}
		return m, nil
	}
	cmd := m.Gallery.UpdateFilter(msg)
	return m, cmd
}

func (m Model) handleGalleryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Search), key.Matches(msg, Keys.Escape):
		return m, m.focusSearch()

	case key.Matches(msg, Keys.Filter):
		if m.Gallery.Len() == 0 {
			return m, nil
		}
		cmd := m.Gallery.StartFilter()
		m.updateLayout()
		return m, cmd

	case key.Matches(msg, Keys.LoadMore):
		return m, m.loadMore()

	case key.Matches(msg, Keys.Open):
		p, ok := m.Gallery.Selected()
		if !ok || m.Opener == nil {
			return m, nil
		}
		return m, OpenPhotoCmd(m.Opener, p)

	case key.Matches(msg, Keys.Up):
		m.Gallery.MoveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.Gallery.MoveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.Gallery.MoveCursor(-m.Gallery.PageSize())
	case key.Matches(msg, Keys.PageDown):
		m.Gallery.MoveCursor(m.Gallery.PageSize())
	case key.Matches(msg, Keys.Home):
		m.Gallery.SetCursor(0)
	case key.Matches(msg, Keys.End):
		m.Gallery.SetCursor(m.Gallery.Len() - 1)
	default:
		return m, nil
	}

	return m, m.observeSentinel(false)
}

// loadMore presses the manual "load more" control
func (m *Model) loadMore() tea.Cmd {
	manual, ok := m.Trigger.(*trigger.Manual)
	if !ok {
		return nil
	}
	f, ok := manual.Press()
	if !ok {
		return nil
	}
	return FetchPageCmd(m.Controller, f, m.FetchTimeout)
}

// observeSentinel reports the gallery sentinel to the auto trigger. Like a
// viewport observer, it only reports visibility changes unless fresh is set,
// which is the case when the sentinel moved because cards were added.
func (m *Model) observeSentinel(fresh bool) tea.Cmd {
	auto, ok := m.Trigger.(*trigger.Auto)
	if !ok {
		return nil
	}

	entry := m.Gallery.Sentinel()
	if !fresh && entry.Intersecting == m.sentinelVisible {
		return nil
	}
	m.sentinelVisible = entry.Intersecting

	var cmds []tea.Cmd
	for _, f := range auto.Observe([]trigger.Entry{entry}) {
		cmds = append(cmds, FetchPageCmd(m.Controller, f, m.FetchTimeout))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) focusSearch() tea.Cmd {
	m.Focus = FocusSearch
	cmd := m.SearchBar.Focus()
	m.updateLayout()
	return cmd
}

func (m *Model) focusGallery() {
	m.Focus = FocusGallery
	m.SearchBar.Blur()
	m.updateLayout()
}

// updateLayout sizes the components to the window
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}
	m.SearchBar.SetWidth(m.Width)

	m.Gallery.SetSize(m.Width, m.galleryHeight())
}
