package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/examvault/internal/domain"
	"github.com/mmcdole/examvault/internal/library"
	"github.com/mmcdole/examvault/internal/metadata"
	"github.com/mmcdole/examvault/internal/search"
	"github.com/mmcdole/examvault/internal/tui/components"
)

// Vertical chrome: header, filter line, footer
const ChromeHeight = 3

const (
	tickInterval   = 100 * time.Millisecond
	statusDuration = 4 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Sync   *library.Synchronizer
	Sizes  *metadata.Enricher
	Opener opener
	logger *slog.Logger

	// Event sources, fed by ChannelObserver and SizeNotifier
	listCh <-chan domain.ListState
	sizeCh <-chan string

	// Data
	State   domain.ListState
	Visible []domain.Document // State.Items after the filter
	Filter  components.FilterBar

	// Dimensions
	Width  int
	Height int

	// UI state
	Cursor       int
	Offset       int
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowHelp     bool
}

// NewModel creates a new application model. viewer, listCh and sizeCh may be nil.
func NewModel(
	sync *library.Synchronizer,
	sizes *metadata.Enricher,
	viewer opener,
	listCh <-chan domain.ListState,
	sizeCh <-chan string,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		Sync:   sync,
		Sizes:  sizes,
		Opener: viewer,
		logger: logger,
		listCh: listCh,
		sizeCh: sizeCh,
		Filter: components.NewFilterBar(),
	}
	m.applyState(sync.Snapshot())
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadInitialCmd(m.Sync),
		WaitForListCmd(m.listCh),
		WaitForSizeCmd(m.sizeCh),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Filter.SetWidth(msg.Width)
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case ListChangedMsg:
		// Queued snapshots can be older than one already applied
		m.applyState(m.Sync.Snapshot())
		return m, WaitForListCmd(m.listCh)

	case SizeResolvedMsg:
		// Labels are read from the enricher at render time
		return m, WaitForSizeCmd(m.sizeCh)

	case ListOpDoneMsg:
		// Re-read in case the observer channel dropped the final snapshot
		m.applyState(m.Sync.Snapshot())
		return m, m.handleOpResult(msg)

	case OpenedMsg:
		return m, m.setStatus("Opened: "+msg.Document.Subject, false)

	case SharedMsg:
		if msg.Copied {
			return m, m.setStatus("Copied: "+msg.Message, false)
		}
		return m, m.setStatus(msg.Message, false)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ErrMsg:
		m.logger.Error("tui error", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m *Model) handleOpResult(msg ListOpDoneMsg) tea.Cmd {
	if msg.Err == nil {
		if msg.Op == OpRefresh {
			return m.setStatus("Refreshed", false)
		}
		return nil
	}

	var notice *library.Notice
	switch {
	case errors.As(msg.Err, &notice):
		m.logger.Warn("first page unavailable", "op", msg.Op.String(), "fromCache", notice.FromCache, "error", notice.Err)
		if notice.FromCache {
			return m.setStatus("Offline: showing saved files", true)
		}
		return m.setStatus("Could not reach the server", true)
	case errors.Is(msg.Err, domain.ErrBusy), errors.Is(msg.Err, domain.ErrEndOfList):
		return nil
	default:
		m.logger.Warn("list operation failed", "op", msg.Op.String(), "error", msg.Err)
		return m.setStatus("Failed "+msg.Op.String()+", scroll to retry", true)
	}
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Filter.IsActive() {
		switch msg.Type {
		case tea.KeyEsc:
			m.Filter.Clear()
			m.refilter()
			return m, nil
		case tea.KeyEnter, tea.KeyDown, tea.KeyUp:
			m.Filter.Deactivate()
			if msg.Type == tea.KeyEnter {
				return m, nil
			}
		default:
			var cmd tea.Cmd
			var changed bool
			m.Filter, cmd, changed = m.Filter.Update(msg)
			if changed {
				m.refilter()
			}
			return m, cmd
		}
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
	case key.Matches(msg, Keys.Escape):
		if m.Filter.Query() != "" {
			m.Filter.Clear()
			m.refilter()
		}
	case key.Matches(msg, Keys.Filter):
		return m, m.Filter.Activate()
	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)
		return m, m.maybeLoadMore()
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.listHeight())
		return m, m.maybeLoadMore()
	case key.Matches(msg, Keys.Home):
		m.moveCursor(-len(m.Visible))
	case key.Matches(msg, Keys.End):
		m.moveCursor(len(m.Visible))
		return m, m.maybeLoadMore()
	case key.Matches(msg, Keys.LoadMore):
		return m, m.loadMore()
	case key.Matches(msg, Keys.Refresh):
		if m.State.IsLoading || m.State.IsRefreshing {
			return m, nil
		}
		return m, RefreshCmd(m.Sync)
	case key.Matches(msg, Keys.Open):
		if doc, ok := m.Selected(); ok && m.Opener != nil {
			return m, OpenCmd(m.Opener, doc)
		}
	case key.Matches(msg, Keys.Share):
		if doc, ok := m.Selected(); ok {
			return m, ShareCmd(doc)
		}
	}
	return m, nil
}

// Selected returns the document under the cursor
func (m Model) Selected() (domain.Document, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return domain.Document{}, false
	}
	return m.Visible[m.Cursor], true
}

// maybeLoadMore requests the next page once the cursor reaches the last row
func (m *Model) maybeLoadMore() tea.Cmd {
	if len(m.Visible) == 0 || m.Cursor < len(m.Visible)-1 {
		return nil
	}
	return m.loadMore()
}

func (m *Model) loadMore() tea.Cmd {
	if !m.State.HasMore || m.State.IsLoading || m.State.IsRefreshing || m.State.Phase != domain.PhaseReady {
		return nil
	}
	return LoadMoreCmd(m.Sync)
}

func (m *Model) applyState(state domain.ListState) {
	m.State = state
	m.refilter()
}

func (m *Model) refilter() {
	var selectedKey string
	if doc, ok := m.Selected(); ok {
		selectedKey = doc.Key()
	}
	m.Visible = search.Filter(m.State.Items, m.Filter.Query())

	m.Cursor = 0
	for i, d := range m.Visible {
		if d.Key() == selectedKey {
			m.Cursor = i
			break
		}
	}
	m.clampScroll()
}

func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	h := m.listHeight()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+h {
		m.Offset = m.Cursor - h + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func (m Model) listHeight() int {
	return max(m.Height-ChromeHeight, 1)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}
