// Package tui is the interactive terminal front end: a number field on top
// of a live rendering of the current layout.
package tui

import (
	"strconv"
	"strings"

	"github.com/amterp/stacks/internal/controller"
	"github.com/amterp/stacks/internal/termview"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerHeight is the number of lines above the viewport: title, input,
// error line and a blank separator.
const headerHeight = 4

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	styleHelp  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"})
)

// Model is the bubbletea model for `stacks tui`.
type Model struct {
	ctrl     *controller.Controller
	input    textinput.Model
	viewport viewport.Model
	err      error
	width    int
	ready    bool
}

// New creates a model editing ctrl's current number.
func New(ctrl *controller.Controller) Model {
	ti := textinput.New()
	ti.Prompt = "Number: "
	ti.Placeholder = "e.g. 24"
	ti.CharLimit = 9
	ti.Width = 12
	ti.SetValue(strconv.Itoa(ctrl.Number()))
	ti.Focus()

	return Model{
		ctrl:     ctrl,
		input:    ti,
		viewport: viewport.New(80, 20),
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-1, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			m.step(1)
			return m, nil
		case "down":
			m.step(-1)
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.input.Value() != before {
		m.err = m.ctrl.SetRaw(m.input.Value())
		m.refresh()
	}

	return m, tea.Batch(cmds...)
}

// step moves the current number by delta and mirrors it into the input.
func (m *Model) step(delta int) {
	n := m.ctrl.Number() + delta
	if err := m.ctrl.Set(n); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.input.SetValue(strconv.Itoa(n))
	m.input.CursorEnd()
	m.refresh()
}

// refresh redraws the layout into the viewport.
func (m *Model) refresh() {
	opts := termview.Options{
		Width:        m.width,
		BaseCellSize: m.ctrl.Renderer().Policy().BaseCellSize,
	}
	m.viewport.SetContent(termview.Render(m.ctrl.Layout(), opts))
	m.viewport.GotoTop()
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Number Stacks"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleError.Render(m.err.Error()))
	}
	b.WriteString("\n\n")

	if !m.ready {
		opts := termview.Options{BaseCellSize: m.ctrl.Renderer().Policy().BaseCellSize}
		b.WriteString(termview.Render(m.ctrl.Layout(), opts))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("↑/↓ step · pgup/pgdn scroll · esc quit"))
	return b.String()
}

// Err returns the last rejected input, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the TUI and blocks until the user quits.
func Run(ctrl *controller.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
