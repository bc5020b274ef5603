// Package tui renders the interactive organisation dashboard.
package tui

import "github.com/charmbracelet/lipgloss"

// CompactWidth is the terminal width below which the dashboard stacks its panes.
const CompactWidth = 100

// Layout constants.
const (
	defaultWidth  = 120
	defaultHeight = 30
	borderPadding = 2
	minTableRows  = 3
	sidebarWidth  = 40
	chromeHeight  = 6
)

// Theme holds the styles the render pipeline draws with.
type Theme struct {
	Header        lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Subtle        lipgloss.Style
	Accent        lipgloss.Style
	Critical      lipgloss.Style
	Badge         lipgloss.Style
	Box           lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

// DefaultTheme returns the dashboard's colour theme.
func DefaultTheme() Theme {
	return Theme{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
	}
}

// RenderContext carries the layout and theme the view is drawn with.
type RenderContext struct {
	Width   int
	Compact bool
	Theme   Theme
}

// NewRenderContext returns the context for a terminal of the given width.
func NewRenderContext(width int, theme Theme) RenderContext {
	return RenderContext{Width: width, Compact: width < CompactWidth, Theme: theme}
}
