package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/keypad"
	"github.com/arloliu/abacus/session"
)

func newModel(t *testing.T) (Model, *session.Session) {
	t.Helper()

	s, err := session.New(nil)
	require.NoError(t, err)

	return New(s), s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}

	return m
}

// TestModel_TypedCalculation verifies keys flow through the keypad into the session.
func TestModel_TypedCalculation(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("1"), runes("2"), runes("*"), runes("3"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "36", s.Display())
	require.NoError(t, m.lastErr)
	require.Len(t, s.History(), 1)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "3", s.Display())
	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "0", s.Display())
}

// TestModel_Shortcuts verifies letter shortcuts dispatch functions and memory.
func TestModel_Shortcuts(t *testing.T) {
	m, s := newModel(t)

	send(t, m, runes("9"), runes("r"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "3", s.Display())

	send(t, m, runes("M"))
	require.Equal(t, 3.0, s.Memory())
	send(t, m, runes("P"))
	require.Equal(t, 6.0, s.Memory())
	send(t, m, runes("C"))
	require.Zero(t, s.Memory())

	send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("p"))
	require.Equal(t, "pi", s.Display())
}

// TestModel_Errors verifies dispatch errors are kept for the status line.
func TestModel_Errors(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("5"), runes("/"), runes("0"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, m.lastErr)
	require.Equal(t, "Error", s.Display())
	require.Contains(t, m.View(), "Error")

	m = send(t, m, runes("M"))
	require.ErrorIs(t, m.lastErr, keypad.ErrNotANumber)

	m = send(t, m, runes("1"))
	require.NoError(t, m.lastErr)
}

// TestModel_AngleMode verifies the angle key cycles through modes.
func TestModel_AngleMode(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("a"))
	require.Equal(t, angle.Radians, s.AngleMode())
	m = send(t, m, runes("a"))
	require.Equal(t, angle.Gradians, s.AngleMode())
	send(t, m, runes("a"))
	require.Equal(t, angle.Degrees, s.AngleMode())
}

// TestModel_Toggles verifies help, history and window size handling.
func TestModel_Toggles(t *testing.T) {
	m, _ := newModel(t)
	require.True(t, m.showHistory)

	m = send(t, m, runes("H"), runes("?"), tea.WindowSizeMsg{Width: 100, Height: 40})
	require.False(t, m.showHistory)
	require.True(t, m.help.ShowAll)
	require.Equal(t, 100, m.width)
	require.NotContains(t, m.View(), "no history")
}

// TestModel_Quit verifies ctrl+c quits.
func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, next.View())
}

// TestModel_View verifies the rendered screen.
func TestModel_View(t *testing.T) {
	m, _ := newModel(t)

	m = send(t, m, runes("2"), runes("+"), runes("2"), tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	require.Contains(t, view, "abacus")
	require.Contains(t, view, "DEG")
	require.Contains(t, view, "2 + 2 = 4")
	require.Contains(t, view, "ans=4")
	require.Contains(t, view, "MC")
}
