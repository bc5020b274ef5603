package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/orgboard/internal/orgs"
	"github.com/rshade/orgboard/internal/query"
)

// Column widths of the listing table.
const (
	colAUMWidth      = 16
	colActivityWidth = 20
	colScoreWidth    = 8
	colCreatedWidth  = 12
	minIdentityWidth = 20
	cellPadding      = 2
)

// Expansion markers in the identity column.
const (
	markCollapsed = "▸ "
	markExpanded  = "▾ "
	markNone      = "  "
)

// View renders the dashboard (Bubble Tea interface).
func (m OrganisationsModel) View() string {
	if m.quitting {
		return ""
	}
	t := m.rc.Theme

	conn, hasData := m.exec.Data()
	failed := m.exec.Status() == query.StatusError

	var content string
	switch {
	case m.showFilter:
		content = m.filter.View()
	case failed:
		content = t.Critical.Render(ErrorMessage)
	case !hasData:
		content = m.spinner.View() + " Loading organisations..."
	default:
		content = m.renderListing()
	}

	summaryConn := conn
	if failed {
		summaryConn = nil
	}
	summary := NewSummary(summaryConn).Render(m.rc)

	var body string
	if m.rc.Compact {
		body = lipgloss.JoinVertical(lipgloss.Left, summary, content)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, content, strings.Repeat(" ", borderPadding), summary)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Header.Render("ORGANISATIONS"),
		body,
		m.renderStatusBar(),
	)
}

// renderListing renders the table followed by the expanded rows of the page.
func (m OrganisationsModel) renderListing() string {
	sections := []string{m.table.View()}
	for _, r := range m.rows {
		if m.expanded[r.ID] && r.Expansion != nil {
			sections = append(sections, RenderExpansion(m.contentContext(), r))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar shows the sort, filter and pagination state plus key help.
func (m OrganisationsModel) renderStatusBar() string {
	t := m.rc.Theme
	spec := m.state.Sort()

	parts := []string{
		t.Label.Render("Sort: ") + t.Value.Render(spec.Field.Label()+" "+spec.Direction.Arrow()),
	}
	if !m.state.Filter().IsZero() {
		parts = append(parts, t.Accent.Render("Filtered"))
	}
	parts = append(parts, m.pager().View(t))
	if m.exec.Loading() {
		parts = append(parts, m.spinner.View()+t.Subtle.Render(" loading"))
	}
	if m.notice != "" {
		parts = append(parts, t.Subtle.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(parts, t.Subtle.Render(" | ")),
		t.Subtle.Render(helpText),
	)
}

// contentContext is the render context of the primary pane.
func (m OrganisationsModel) contentContext() RenderContext {
	rc := m.rc
	if !rc.Compact {
		rc.Width = max(rc.Width-sidebarWidth-borderPadding*2, minIdentityWidth)
	}
	return rc
}

// columnTitle marks the active sort column with its direction.
func (m OrganisationsModel) columnTitle(field orgs.SortField) string {
	spec := m.state.Sort()
	if spec.Field == field {
		return field.Label() + " " + spec.Direction.Arrow()
	}
	return field.Label()
}

// buildTable creates the listing table for the current rows and layout.
func (m OrganisationsModel) buildTable() table.Model {
	fixed := colAUMWidth + colActivityWidth + colScoreWidth + colCreatedWidth
	const numColumns = 5
	identityWidth := max(m.contentContext().Width-fixed-numColumns*cellPadding, minIdentityWidth)

	columns := []table.Column{
		{Title: m.columnTitle(orgs.SortByENS), Width: identityWidth},
		{Title: m.columnTitle(orgs.SortByAUM), Width: colAUMWidth},
		{Title: m.columnTitle(orgs.SortByActivity), Width: colActivityWidth},
		{Title: m.columnTitle(orgs.SortByScore), Width: colScoreWidth},
		{Title: m.columnTitle(orgs.SortByCreatedAt), Width: colCreatedWidth},
	}

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{
			m.identityCell(r),
			r.AUM,
			r.Activity,
			r.Score,
			r.Created,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(!m.showFilter),
		table.WithHeight(max(m.height-chromeHeight, minTableRows)),
	)

	s := table.DefaultStyles()
	s.Header = m.rc.Theme.TableHeader
	s.Selected = m.rc.Theme.TableSelected
	t.SetStyles(s)

	return t
}

func (m OrganisationsModel) identityCell(r Row) string {
	mark := markNone
	if r.Expansion != nil {
		mark = markCollapsed
		if m.expanded[r.ID] {
			mark = markExpanded
		}
	}
	cell := mark + r.Identity
	if r.Badge != "" {
		cell += " (" + r.Badge + ")"
	}
	return cell
}
