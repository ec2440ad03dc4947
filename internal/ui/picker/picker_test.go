package picker

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testOptions() []Option {
	return []Option{
		{Label: "Ann, 20", Value: 1},
		{Label: "Bea, 21", Value: 2},
		{Label: "Cid, 22", Value: 3},
	}
}

func TestPicker_New(t *testing.T) {
	m := New("student", "Select student", testOptions())

	assert.Equal(t, "student", m.ID())
	assert.Equal(t, "Select student", m.title)
	assert.Len(t, m.options, 3)
	assert.Equal(t, 0, m.selected, "expected default selection at 0")
}

func TestPicker_SetSelected(t *testing.T) {
	m := New("p", "Test", testOptions())

	m = m.SetSelected(2)
	assert.Equal(t, 2, m.selected)

	m = m.SetSelected(10)
	assert.Equal(t, 2, m.selected, "expected selection unchanged for invalid index")

	m = m.SetSelected(-1)
	assert.Equal(t, 2, m.selected, "expected selection unchanged for negative index")
}

func TestPicker_Selected_Empty(t *testing.T) {
	m := New("p", "Test", nil)
	assert.Equal(t, Option{}, m.Selected())
}

func TestPicker_Update_Navigate(t *testing.T) {
	m := New("p", "Test", testOptions())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.selected)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected, "expected selection to stay at bottom")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, m.selected)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected, "expected selection to stay at top")
}

func TestPicker_Update_EnterChooses(t *testing.T) {
	m := New("course", "Select course", testOptions()).SetSelected(1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ChosenMsg)
	require.True(t, ok)
	assert.Equal(t, "course", msg.PickerID)
	assert.Equal(t, 2, msg.Option.Value)
}

func TestPicker_Update_EnterOnEmpty(t *testing.T) {
	m := New("p", "Test", nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestPicker_Update_IgnoresOtherMouseEvents(t *testing.T) {
	m := New("p", "Test", testOptions())
	m, cmd := m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.selected)
}

func TestPicker_View(t *testing.T) {
	m := New("p", "Select student", testOptions()).SetSelected(1)
	view := ansi.Strip(zone.Scan(m.View()))

	assert.Contains(t, view, "Select student")
	assert.Contains(t, view, " Ann, 20")
	assert.Contains(t, view, ">Bea, 21")
	assert.Contains(t, view, "╭")
}
