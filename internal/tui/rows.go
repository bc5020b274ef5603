package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/orgboard/internal/format"
	"github.com/rshade/orgboard/internal/orgs"
)

const (
	// aumMarker prefixes amounts held by an organisation.
	aumMarker = "◈ "
	// iconMarker stands in for a profile icon in the identity cell.
	iconMarker = "◉ "
	// maxLinks is the number of profile links shown in an expansion.
	maxLinks = 2

	badgeHead = 6
	badgeTail = 4
)

// Row is one organisation mapped to display cells.
type Row struct {
	ID      string
	Address string
	Locator string

	// Identity is the profile name with the icon marker, or the ENS name or address.
	Identity string
	// Badge is the shortened address shown next to an ENS identity.
	Badge string

	AUM      string
	Activity string
	Score    string
	Created  string

	// Expansion is nil when the organisation has no profile details to show.
	Expansion *Expansion
}

// Expansion is the inline profile detail of a row.
type Expansion struct {
	Description string
	Links       []string
	Age         string
}

// NewRow maps o to display cells. now anchors the relative creation age.
func NewRow(o orgs.Organisation, now time.Time) Row {
	r := Row{
		ID:       o.ID,
		Address:  o.Address,
		Locator:  o.Locator(),
		AUM:      aumMarker + format.Number(o.AUM, 2, format.OneBillion),
		Activity: format.Count(o.Activity),
		Score:    format.Percent(o.Score),
		Created:  format.Date(o.CreatedAt),
	}

	if p := o.Profile; p != nil && p.Name != "" && p.Icon != "" {
		r.Identity = iconMarker + p.Name
	} else {
		r.Identity = o.DisplayName()
	}
	if r.Identity != o.Address {
		r.Badge = ShortAddress(o.Address)
	}

	if !orgs.IsProfileEmpty(o.Profile) {
		r.Expansion = newExpansion(o, now)
	}
	return r
}

func newExpansion(o orgs.Organisation, now time.Time) *Expansion {
	e := &Expansion{Description: orgs.NoDescription, Age: format.Age(o.CreatedAt, now)}
	if o.Profile.HasDescription() {
		e.Description = strings.TrimSpace(o.Profile.Description)
	}
	for _, l := range o.Profile.Links {
		if len(e.Links) == maxLinks {
			break
		}
		if l = strings.TrimSpace(l); l != "" {
			e.Links = append(e.Links, l)
		}
	}
	return e
}

// BuildRows maps a page to rows. A nil connection has no rows.
func BuildRows(conn *orgs.Connection, now time.Time) []Row {
	if conn == nil {
		return nil
	}
	rows := make([]Row, len(conn.Nodes))
	for i, o := range conn.Nodes {
		rows[i] = NewRow(o, now)
	}
	return rows
}

// ShortAddress abbreviates a hex address to its head and tail.
func ShortAddress(address string) string {
	if len(address) <= badgeHead+badgeTail+1 {
		return address
	}
	return address[:badgeHead] + "…" + address[len(address)-badgeTail:]
}

// Summary holds the formatted aggregates of the listing.
type Summary struct {
	Organisations string
	TotalAUM      string
	TotalActivity string
}

// NewSummary formats the totals of conn. Before the first page arrives every value is
// the placeholder.
func NewSummary(conn *orgs.Connection) Summary {
	if conn == nil {
		return Summary{
			Organisations: format.Placeholder,
			TotalAUM:      format.Placeholder,
			TotalActivity: format.Placeholder,
		}
	}
	return Summary{
		Organisations: format.Count(int64(conn.TotalCount)),
		TotalAUM:      format.Number(conn.TotalAUM, 2, format.OneBillion),
		TotalActivity: format.Number(conn.TotalActivity, 0, format.One),
	}
}

// Render draws the summary sidebar.
func (s Summary) Render(rc RenderContext) string {
	t := rc.Theme
	lines := []string{
		t.Header.Render("SUMMARY"),
		t.Value.Render(s.Organisations) + t.Label.Render(" organisations"),
		t.Value.Render(aumMarker+s.TotalAUM) + t.Label.Render(" total AUM"),
		t.Value.Render(s.TotalActivity) + t.Label.Render(" total activities (90 days)"),
	}
	box := t.Box
	if !rc.Compact {
		box = box.Width(sidebarWidth)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderExpansion draws the inline profile detail of r. Compact layouts stack the
// description above the links; wide layouts put them side by side.
func RenderExpansion(rc RenderContext, r Row) string {
	e := r.Expansion
	if e == nil {
		return ""
	}
	t := rc.Theme

	desc := lipgloss.JoinVertical(lipgloss.Left,
		t.Label.Render("Description"),
		e.Description,
	)

	linkLines := []string{t.Label.Render("Links")}
	if len(e.Links) == 0 {
		linkLines = append(linkLines, orgs.NoLinks)
	}
	for _, l := range e.Links {
		linkLines = append(linkLines, t.Accent.Render(l))
	}
	links := lipgloss.JoinVertical(lipgloss.Left, linkLines...)

	header := t.Header.Render(r.Identity)
	if e.Age != "" && e.Age != format.Placeholder {
		header += t.Subtle.Render("  created " + e.Age)
	}

	width := max(rc.Width-borderPadding*2, 1)
	var body string
	if rc.Compact {
		body = lipgloss.JoinVertical(lipgloss.Left, desc, "", links)
	} else {
		half := width / 2
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(half).PaddingRight(borderPadding).Render(desc),
			links,
		)
	}
	return t.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}
