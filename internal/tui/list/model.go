package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc renders one item. cursor reports whether the cursor is on the item and
// checked whether it is toggled on.
type RenderFunc[T any] func(item T, cursor, checked bool) string

// Model is a checkable list of items rendered through a viewport.
type Model[T any] struct {
	items      []T
	checked    []bool
	renderFunc RenderFunc[T]

	cursor int

	// visibleFrom and visibleTo bound the rendered rows; visibleTo is exclusive.
	visibleFrom int
	visibleTo   int

	height  int
	focused bool
}

// New returns a list of items shown height rows at a time.
func New[T any](items []T, height int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		checked:    make([]bool, len(items)),
		renderFunc: renderFunc,
		height:     max(height, 1),
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation and toggle keys while the list is focused.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.items) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		m.moveTo(m.cursor - 1)
	case "down", "j":
		m.moveTo(m.cursor + 1)
	case "pgup":
		m.moveTo(m.cursor - m.height)
	case "pgdown":
		m.moveTo(m.cursor + m.height)
	case "home":
		m.moveTo(0)
	case "end":
		m.moveTo(len(m.items) - 1)
	case " ", "space":
		m.checked[m.cursor] = !m.checked[m.cursor]
	}
	return m, nil
}

func (m *Model[T]) moveTo(index int) {
	m.cursor = min(max(index, 0), len(m.items)-1)
	m.updateVisibleRange()
}

// updateVisibleRange keeps the cursor inside the viewport, centred where possible.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := m.cursor - m.height/halfViewportDivisor
	if from < 0 {
		from = 0
	}
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}
	m.visibleFrom, m.visibleTo = from, to
}

// View renders the rows inside the viewport.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		if i > m.visibleFrom {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderFunc(m.items[i], m.focused && i == m.cursor, m.checked[i]))
	}
	return sb.String()
}

// Focus gives the list keyboard input.
func (m *Model[T]) Focus() {
	m.focused = true
}

// Blur takes keyboard input away from the list.
func (m *Model[T]) Blur() {
	m.focused = false
}

// Focused reports whether the list receives keyboard input.
func (m *Model[T]) Focused() bool {
	return m.focused
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Cursor returns the index of the item under the cursor.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// SetChecked toggles the item at index on or off. Out of range indexes are ignored.
func (m *Model[T]) SetChecked(index int, on bool) {
	if index >= 0 && index < len(m.items) {
		m.checked[index] = on
	}
}

// IsChecked reports whether the item at index is toggled on.
func (m *Model[T]) IsChecked(index int) bool {
	return index >= 0 && index < len(m.items) && m.checked[index]
}

// Checked returns the toggled-on items in list order.
func (m *Model[T]) Checked() []T {
	var out []T
	for i, on := range m.checked {
		if on {
			out = append(out, m.items[i])
		}
	}
	return out
}

// ClearChecked toggles every item off.
func (m *Model[T]) ClearChecked() {
	for i := range m.checked {
		m.checked[i] = false
	}
}

// VisibleFrom returns the first rendered index (inclusive).
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last rendered index (exclusive).
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}
