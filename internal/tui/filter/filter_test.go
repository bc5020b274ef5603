package filter

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orgboard/internal/orgs"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestSelectMultisig(t *testing.T) {
	m := New(orgs.DefaultFilterDefinitions(), orgs.Filter{})

	m, cmd := press(t, m, keyDown, keySpace, keyEnter)
	require.NotNil(t, cmd)

	changed, ok := cmd().(ChangedMsg)
	require.True(t, ok)
	multisig, _ := orgs.KitByLabel("Multisig")
	assert.Equal(t, multisig.Value, changed.Filter.Kit)
	assert.Nil(t, changed.Filter.CreatedAt)
	assert.False(t, changed.Filter.Profile)
	assert.NoError(t, m.Err())
}

func TestDateRangeAndProfile(t *testing.T) {
	m := New(orgs.DefaultFilterDefinitions(), orgs.Filter{})

	m, _ = press(t, m, keyTab)
	m = typeText(m, "2020-01-01")
	m, _ = press(t, m, keyTab)
	m = typeText(m, "2020-12-31")
	m, _ = press(t, m, keyTab, keySpace)

	f, err := m.Filter()
	require.NoError(t, err)
	require.NotNil(t, f.CreatedAt)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), f.CreatedAt.From)
	assert.Equal(t, time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC), f.CreatedAt.To)
	assert.True(t, f.Profile)
	assert.Empty(t, f.Kit)
}

func TestInvalidDate(t *testing.T) {
	m := New(orgs.DefaultFilterDefinitions(), orgs.Filter{})
	m, _ = press(t, m, keyTab)
	m = typeText(m, "01/02/20")

	m, cmd := press(t, m, keyEnter)
	assert.Nil(t, cmd)
	require.ErrorIs(t, m.Err(), ErrInvalidDate)
	assert.Contains(t, m.View(), "invalid date")
}

func TestEndBeforeStart(t *testing.T) {
	from := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	m := New(orgs.DefaultFilterDefinitions(), orgs.Filter{CreatedAt: &orgs.DateRange{From: from, To: from.AddDate(0, -1, 0)}})

	_, err := m.Filter()
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestResetFromCurrentFilter(t *testing.T) {
	company, _ := orgs.KitByLabel("Company")
	current := orgs.Filter{
		Kit:       company.Value[:1],
		CreatedAt: &orgs.DateRange{From: time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC)},
		Profile:   true,
	}
	m := New(orgs.DefaultFilterDefinitions(), current)

	f, err := m.Filter()
	require.NoError(t, err)
	assert.Equal(t, company.Value, f.Kit, "a checked kit selects all of its addresses")
	assert.True(t, f.Profile)
	assert.Equal(t, current.CreatedAt.From, f.CreatedAt.From)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	f, err = m.Filter()
	require.NoError(t, err)
	assert.True(t, f.IsZero())
}

func TestEscCloses(t *testing.T) {
	m := New(orgs.DefaultFilterDefinitions(), orgs.Filter{})
	_, cmd := press(t, m, keyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, ClosedMsg{}, cmd())
}

func TestView(t *testing.T) {
	m := New(orgs.DefaultFilterDefinitions(), orgs.Filter{Profile: true})
	view := m.View()
	assert.Contains(t, view, "Templates")
	assert.Contains(t, view, "Multisig")
	assert.Contains(t, view, "[x] Profile")
}
