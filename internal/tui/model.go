// Package tui is the interactive terminal calculator built on bubbletea.
//
// The model reads session snapshots for rendering and turns key presses into
// keypad tokens. It is meant for the bubbletea event loop only.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/keypad"
	"github.com/arloliu/abacus/session"
)

const historyRows = 8

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	expressionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	displayStyle    = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Align(lipgloss.Right)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	buttonStyle  = lipgloss.NewStyle().Width(6).Align(lipgloss.Center)
	historyStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1)
)

// Model is the bubbletea model for the calculator.
type Model struct {
	session *session.Session
	keys    keyMap
	help    help.Model

	width       int
	showHistory bool
	lastErr     error
	quitting    bool
}

// New creates a Model over s.
func New(s *session.Session) Model {
	return Model{
		session:     s,
		keys:        defaultKeyMap(),
		help:        help.New(),
		width:       40,
		showHistory: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Angle):
			m.lastErr = m.session.SetAngleMode(nextMode(m.session.AngleMode()))
			return m, nil
		case key.Matches(msg, m.keys.History):
			m.showHistory = !m.showHistory
			return m, nil
		}

		if tok, ok := m.keys.tokenFor(msg.String()); ok {
			m.lastErr = keypad.Dispatch(m.session, tok)
		}
	}

	return m, nil
}

func nextMode(mode angle.Mode) angle.Mode {
	switch mode {
	case angle.Degrees:
		return angle.Radians
	case angle.Radians:
		return angle.Gradians
	default:
		return angle.Degrees
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.session.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("abacus"))
	b.WriteString("\n")
	b.WriteString(expressionStyle.Render(st.Expression))
	b.WriteString("\n")
	b.WriteString(displayStyle.Width(m.displayWidth()).Render(st.Display))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(st))
	b.WriteString("\n\n")

	body := renderKeypad()
	if m.showHistory {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", renderHistory(st))
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) displayWidth() int {
	return max(20, min(m.width-2, 60))
}

func (m Model) renderStatus(st session.State) string {
	status := fmt.Sprintf("%s  M=%s", strings.ToUpper(st.AngleMode.String()), engine.FormatResult(st.Memory))
	if st.HasLastResult {
		status += "  ans=" + engine.FormatResult(st.LastResult)
	}
	line := statusStyle.Render(status)
	if m.lastErr != nil {
		line += "  " + errorStyle.Render(m.lastErr.Error())
	}

	return line
}

func renderKeypad() string {
	rows := keypad.Layout()
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, btn := range row {
			cells = append(cells, buttonStyle.Render(btn.Label))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHistory(st session.State) string {
	if len(st.History) == 0 {
		return historyStyle.Render("no history")
	}

	n := min(historyRows, len(st.History))
	lines := make([]string, 0, n)
	for _, item := range st.History[:n] {
		line := item.Expression + " = " + item.Result.String()
		if item.Error != "" {
			line = errorStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return historyStyle.Render(strings.Join(lines, "\n"))
}

// Run starts the interactive program over s and blocks until it exits.
func Run(s *session.Session, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(s), opts...).Run()
	return err
}
