// Package filter is the filter panel of the organisation dashboard. It builds its
// controls from filter definitions and reports the constructed filter with ChangedMsg.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/orgboard/internal/orgs"
	listview "github.com/rshade/orgboard/internal/tui/list"
)

// DateLayout is the input format of the date range fields.
const DateLayout = "2006-01-02"

// listHeight is the number of list choices shown at once.
const listHeight = 7

// ErrInvalidDate is reported for a date field that does not parse.
var ErrInvalidDate = errors.New("invalid date")

// ChangedMsg carries the filter the user applied.
type ChangedMsg struct {
	Filter orgs.Filter
}

// ClosedMsg reports that the panel was dismissed without applying.
type ClosedMsg struct{}

// control is one focusable input of the panel.
type control int

const (
	controlList control = iota
	controlFrom
	controlTo
	controlProfile
	numControls
)

const (
	checkedMark   = "[x]"
	uncheckedMark = "[ ]"
)

// Styles used by the panel.
//
//nolint:gochecknoglobals // Shared styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the filter panel.
type Model struct {
	defs []orgs.FilterDefinition

	listDef     orgs.FilterDefinition
	dateDef     orgs.FilterDefinition
	checkboxDef orgs.FilterDefinition

	list    *listview.Model[orgs.FilterItem]
	from    textinput.Model
	to      textinput.Model
	profile bool

	focus control
	err   error
}

// New builds a panel for defs, pre-populated from the current filter.
func New(defs []orgs.FilterDefinition, current orgs.Filter) Model {
	m := Model{defs: defs}
	for _, d := range defs {
		switch d.Kind {
		case orgs.FilterKindList:
			m.listDef = d
		case orgs.FilterKindDateRange:
			m.dateDef = d
		case orgs.FilterKindCheckbox:
			m.checkboxDef = d
		}
	}

	m.list = listview.New(m.listDef.Items, listHeight, renderItem)
	m.from = newDateInput("from")
	m.to = newDateInput("to")
	m.Reset(current)
	m.setFocus(controlList)
	return m
}

func newDateInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder + " (" + DateLayout + ")"
	ti.CharLimit = len(DateLayout)
	ti.Width = len(DateLayout) + 2
	ti.Prompt = ""
	return ti
}

func renderItem(item orgs.FilterItem, cursor, checked bool) string {
	mark := uncheckedMark
	if checked {
		mark = checkedMark
	}
	line := mark + " " + item.Label
	if cursor {
		return focusStyle.Render("> " + line)
	}
	return "  " + line
}

// Reset loads f into the controls. List items are checked when any of their values
// is part of the kit filter.
func (m *Model) Reset(f orgs.Filter) {
	m.list.ClearChecked()
	for i, item := range m.listDef.Items {
		for _, v := range item.Value {
			if slices.ContainsFunc(f.Kit, func(k string) bool { return strings.EqualFold(k, v) }) {
				m.list.SetChecked(i, true)
				break
			}
		}
	}

	m.from.SetValue("")
	m.to.SetValue("")
	if f.CreatedAt != nil {
		if !f.CreatedAt.From.IsZero() {
			m.from.SetValue(f.CreatedAt.From.UTC().Format(DateLayout))
		}
		if !f.CreatedAt.To.IsZero() {
			m.to.SetValue(f.CreatedAt.To.UTC().Format(DateLayout))
		}
	}
	m.profile = f.Profile
	m.err = nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles panel input. Enter applies the filter, esc closes the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return ClosedMsg{} }
	case "enter":
		f, err := m.Filter()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, func() tea.Msg { return ChangedMsg{Filter: f} }
	case "tab":
		m.setFocus((m.focus + 1) % numControls)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + numControls - 1) % numControls)
		return m, nil
	case "ctrl+x":
		m.Reset(orgs.Filter{})
		return m, nil
	}

	if m.focus == controlProfile {
		if s := keyMsg.String(); s == " " || s == "space" {
			m.profile = !m.profile
		}
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case controlList:
		m.list.Update(msg)
	case controlFrom:
		m.from, cmd = m.from.Update(msg)
	case controlTo:
		m.to, cmd = m.to.Update(msg)
	case controlProfile, numControls:
	}
	return m, cmd
}

func (m *Model) setFocus(c control) {
	m.focus = c
	m.list.Blur()
	m.from.Blur()
	m.to.Blur()
	switch c {
	case controlList:
		m.list.Focus()
	case controlFrom:
		m.from.Focus()
	case controlTo:
		m.to.Focus()
	case controlProfile, numControls:
	}
}

// Filter returns the filter described by the controls. An upper date bound covers
// the whole day.
func (m Model) Filter() (orgs.Filter, error) {
	var f orgs.Filter
	for _, item := range m.list.Checked() {
		f.Kit = append(f.Kit, item.Value...)
	}

	from, err := parseDate(m.from.Value())
	if err != nil {
		return orgs.Filter{}, fmt.Errorf("%s from: %w", m.dateDef.Label, err)
	}
	to, err := parseDate(m.to.Value())
	if err != nil {
		return orgs.Filter{}, fmt.Errorf("%s to: %w", m.dateDef.Label, err)
	}
	if !to.IsZero() {
		to = to.Add(24*time.Hour - time.Second)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return orgs.Filter{}, fmt.Errorf("%s: %w: end before start", m.dateDef.Label, ErrInvalidDate)
	}
	if !from.IsZero() || !to.IsZero() {
		f.CreatedAt = &orgs.DateRange{From: from, To: to}
	}

	f.Profile = m.profile
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q, expected %s", ErrInvalidDate, s, DateLayout)
	}
	return t, nil
}

// Err returns the validation error of the last apply attempt.
func (m Model) Err() error {
	return m.err
}

// View renders the panel.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n\n")

	b.WriteString(m.label(controlList, m.listDef.Label))
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	b.WriteString(m.label(controlFrom, m.dateDef.Label+" from "))
	b.WriteString(m.from.View())
	b.WriteString("\n")
	b.WriteString(m.label(controlTo, m.dateDef.Label+" to   "))
	b.WriteString(m.to.View())
	b.WriteString("\n\n")

	mark := uncheckedMark
	if m.profile {
		mark = checkedMark
	}
	b.WriteString(m.label(controlProfile, mark+" "+m.checkboxDef.Label))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field  space: toggle  ctrl+x: clear  enter: apply  esc: close"))

	return panelStyle.Render(b.String())
}

func (m Model) label(c control, text string) string {
	if m.focus == c {
		return focusStyle.Render(text)
	}
	return labelStyle.Render(text)
}
