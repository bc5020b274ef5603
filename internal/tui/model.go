package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/orgboard/internal/listing"
	"github.com/rshade/orgboard/internal/logging"
	"github.com/rshade/orgboard/internal/orgs"
	"github.com/rshade/orgboard/internal/query"
	"github.com/rshade/orgboard/internal/tui/filter"
)

// ErrorMessage replaces the listing when the latest query failed.
const ErrorMessage = "An error occurred. Try again."

// ResultMsg delivers the outcome of a query started by the model.
type ResultMsg query.Result

// OpenedMsg reports the outcome of opening an organisation outside the dashboard.
type OpenedMsg struct {
	URL string
	Err error
}

// Options configures the collaborators of the dashboard.
type Options struct {
	// AppURL is the base of the external organisation links.
	AppURL    string
	Navigator Navigator
	Opener    Opener
	// Theme defaults to DefaultTheme.
	Theme *Theme
	// Now anchors relative ages. Defaults to time.Now.
	Now func() time.Time
}

// OrganisationsModel is the Bubble Tea model of the organisation listing.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type OrganisationsModel struct {
	ctx   context.Context
	state *listing.State
	exec  *query.Executor
	opts  Options

	table   table.Model
	spinner spinner.Model
	filter  filter.Model

	rc       RenderContext
	height   int
	rows     []Row
	expanded map[string]bool

	showFilter bool
	quitting   bool
	notice     string
}

// NewOrganisationsModel returns the dashboard for state, fetching through exec. The
// first query is issued by Init.
func NewOrganisationsModel(
	ctx context.Context,
	state *listing.State,
	exec *query.Executor,
	opts Options,
) OrganisationsModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Accent

	m := OrganisationsModel{
		ctx:      ctx,
		state:    state,
		exec:     exec,
		opts:     opts,
		spinner:  s,
		rc:       NewRenderContext(defaultWidth, theme),
		height:   defaultHeight,
		expanded: make(map[string]bool),
	}
	m.table = m.buildTable()
	return m
}

// Init starts the first query (Bubble Tea interface).
func (m OrganisationsModel) Init() tea.Cmd {
	return m.fetch()
}

// fetch registers a query for the current state and returns the command running it.
func (m OrganisationsModel) fetch() tea.Cmd {
	req := m.exec.Begin(m.state.Variables())
	ctx, exec := m.ctx, m.exec
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return ResultMsg(exec.Fetch(ctx, req))
	})
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m OrganisationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rc = NewRenderContext(msg.Width, m.rc.Theme)
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case ResultMsg:
		if m.exec.Apply(query.Result(msg)) && msg.Err == nil {
			m.refreshRows()
		}
		return m, nil
	case spinner.TickMsg:
		if !m.exec.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case filter.ChangedMsg:
		m.closeFilter()
		if !m.state.SetFilter(msg.Filter) {
			return m, nil
		}
		return m, m.fetch()
	case filter.ClosedMsg:
		m.closeFilter()
		return m, nil
	case OpenedMsg:
		return m.handleOpened(msg), nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.String() == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.showFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	if isKey {
		return m.handleKey(keyMsg)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m OrganisationsModel) handleKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := keyMsg.String()
	if field, ok := sortKeys[key]; ok {
		m.state.SortBy(field)
		m.rebuildTable()
		return m, m.fetch()
	}

	switch key {
	case keyQuit:
		m.quitting = true
		return m, tea.Quit
	case keyRefresh:
		return m, m.fetch()
	case keyNext:
		if !m.exec.Loading() && m.pager().Next() {
			return m, m.fetch()
		}
		return m, nil
	case keyPrev:
		if !m.exec.Loading() && m.pager().Prev() {
			return m, m.fetch()
		}
		return m, nil
	case keyFilter:
		m.filter = filter.New(orgs.DefaultFilterDefinitions(), m.state.Filter())
		m.showFilter = true
		m.table.Blur()
		return m, m.filter.Init()
	case keyClear:
		if m.state.SetFilter(orgs.Filter{}) {
			return m, m.fetch()
		}
		return m, nil
	case keyEnter:
		if row, ok := m.selectedRow(); ok && row.Expansion != nil {
			m.expanded[row.ID] = !m.expanded[row.ID]
			m.rebuildTable()
		}
		return m, nil
	case keyView:
		if row, ok := m.selectedRow(); ok && m.opts.Navigator != nil {
			path := ProfilePath(row.Address)
			logging.FromContext(m.ctx).Debug().Ctx(m.ctx).Str("path", path).Msg("navigating to profile")
			m.opts.Navigator.Push(path)
			m.notice = "profile: " + path
		}
		return m, nil
	case keyOpen:
		return m, m.open()
	case keyEsc:
		m.notice = ""
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m OrganisationsModel) open() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || m.opts.Opener == nil || m.opts.AppURL == "" {
		return nil
	}
	u := OrganisationURL(m.opts.AppURL, row.Locator)
	opener := m.opts.Opener
	return func() tea.Msg {
		return OpenedMsg{URL: u, Err: opener.Open(u)}
	}
}

func (m OrganisationsModel) handleOpened(msg OpenedMsg) OrganisationsModel {
	if msg.Err != nil {
		logging.FromContext(m.ctx).Warn().Ctx(m.ctx).Err(msg.Err).Str("url", msg.URL).Msg("opening organisation failed")
		m.notice = "could not open " + msg.URL
		return m
	}
	m.notice = "opened " + msg.URL
	return m
}

func (m *OrganisationsModel) closeFilter() {
	m.showFilter = false
	m.table.Focus()
}

// pager binds the page info of the displayed page to the pagination state. A page
// fetched under another sort or filter leaves paging disabled.
func (m OrganisationsModel) pager() Pager {
	var info orgs.PageInfo
	if conn, ok := m.exec.Data(); ok && !m.exec.Slot().Stale(m.state.Variables()) {
		info = conn.PageInfo
	}
	return NewPager(info, m.state.Page)
}

func (m OrganisationsModel) selectedRow() (Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[i], true
}

// refreshRows rebuilds the rows from the last good page.
func (m *OrganisationsModel) refreshRows() {
	conn, _ := m.exec.Data()
	m.rows = BuildRows(conn, m.opts.Now())
	m.table = m.buildTable()
}

// rebuildTable recreates the table and keeps the cursor on the same row.
func (m *OrganisationsModel) rebuildTable() {
	cursor := m.table.Cursor()
	m.table = m.buildTable()
	if cursor > 0 && cursor < len(m.rows) {
		m.table.SetCursor(cursor)
	}
}

// Rows returns the rows of the displayed page.
func (m OrganisationsModel) Rows() []Row {
	return m.rows
}

// State returns the listing state the model drives.
func (m OrganisationsModel) State() *listing.State {
	return m.state
}

// Executor returns the query executor of the model.
func (m OrganisationsModel) Executor() *query.Executor {
	return m.exec
}
