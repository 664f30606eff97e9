// Package tui is a terminal front-end for the launcher session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/hoppxi/runa/pkg/search"
)

// Backend is what the model drives: a session plus activation.
type Backend interface {
	Session() *search.Session
	Activate() (search.Activation, search.State, error)
}

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	cellStyle     = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	pageNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

type Model struct {
	backend Backend
	input   textinput.Model
	state   search.State
	columns int
	top     int
	width   int
	err     error

	launched *search.Activation
	quitting bool
}

func New(b Backend, placeholder string, emojiColumns int) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "❯ "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return Model{
		backend: b,
		input:   ti,
		state:   b.Session().Show(search.Main),
		columns: emojiColumns,
	}
}

// Launched is the action run on the way out, if any.
func (m Model) Launched() (search.Activation, bool) {
	if m.launched == nil {
		return search.Activation{}, false
	}
	return *m.launched, true
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-8)
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.err = nil
		m.setState(m.backend.Session().SetQuery(m.input.Value()))
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	session := m.backend.Session()
	grid := m.state.Page == search.EmojiSearch

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return tea.Quit, true
	case "esc":
		if m.state.Page != search.Main {
			m.setState(session.SwitchPage(search.Main))
			return nil, true
		}
		m.setState(session.Hide())
		m.quitting = true
		return tea.Quit, true
	case "enter":
		return m.activate(), true
	case "up", "ctrl+k", "ctrl+p":
		m.setState(session.Move(search.Up))
		return nil, true
	case "down", "ctrl+j", "ctrl+n", "tab":
		m.setState(session.Move(search.Down))
		return nil, true
	case "left":
		if grid {
			m.setState(session.Move(search.Left))
			return nil, true
		}
	case "right":
		if grid {
			m.setState(session.Move(search.Right))
			return nil, true
		}
	case "ctrl+e":
		m.setState(session.SwitchPage(search.EmojiSearch))
		return nil, true
	case "ctrl+v":
		m.setState(session.SwitchPage(search.ClipboardHistory))
		return nil, true
	}
	return nil, false
}

func (m *Model) activate() tea.Cmd {
	act, st, err := m.backend.Activate()
	m.setState(st)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	if act.Handled {
		return nil
	}
	if _, display := act.Action.(catalog.DisplayOnly); display {
		return nil
	}
	m.launched = &act
	m.quitting = true
	return tea.Quit
}

// setState adopts a reducer result and keeps the focused row on screen.
func (m *Model) setState(st search.State) {
	m.state = st
	if m.input.Value() != st.Raw {
		m.input.SetValue(st.Raw)
		m.input.CursorEnd()
	}

	layout := search.LayoutOf(st.Page, m.columns)
	row := layout.Row(st.Focus)
	switch {
	case len(st.Results) == 0 || row < m.top:
		m.top = row
	case row >= m.top+layout.MaxRows:
		m.top = row - layout.MaxRows + 1
	}
	if len(st.Results) == 0 {
		m.top = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if rows := m.renderRows(); rows != "" {
		b.WriteString("\n")
		b.WriteString(rows)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	}
	b.WriteString(footerStyle.Render(m.footer()))

	box := boxStyle
	if m.width > 0 {
		box = box.Width(max(20, m.width-2))
	}
	return box.Render(b.String())
}

func (m Model) renderRows() string {
	results := m.state.Results
	if len(results) == 0 {
		return ""
	}
	layout := search.LayoutOf(m.state.Page, m.columns)

	var lines []string
	for row := m.top; row < m.top+layout.MaxRows; row++ {
		start := row * layout.Columns
		if start >= len(results) {
			break
		}
		end := min(start+layout.Columns, len(results))

		if layout.Columns > 1 {
			cells := make([]string, 0, end-start)
			for i := start; i < end; i++ {
				style := cellStyle
				if i == m.state.Focus {
					style = style.Inherit(focusStyle)
				}
				cells = append(cells, style.Render(results[i].Name))
			}
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			continue
		}
		lines = append(lines, m.renderLine(results[start], start == m.state.Focus))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLine(c search.Candidate, focused bool) string {
	if focused {
		return focusStyle.Render(fmt.Sprintf("› %s  %s", c.Name, c.Description))
	}
	return "  " + nameStyle.Render(c.Name) + "  " + descStyle.Render(c.Description)
}

func (m Model) footer() string {
	page := pageNameStyle.Render(m.state.Page.String())
	count := fmt.Sprintf("%d results", len(m.state.Results))
	if m.state.Page == search.EmojiSearch && len(m.state.Results) > 0 {
		count = fmt.Sprintf("%d emoji", len(m.state.Results))
	}
	return fmt.Sprintf("%s · %s · enter run · esc back · ctrl+e emoji · ctrl+v clipboard", page, count)
}

// Run starts the program and blocks until the user leaves.
func Run(b Backend, placeholder string, emojiColumns int) (search.Activation, bool, error) {
	final, err := tea.NewProgram(New(b, placeholder, emojiColumns)).Run()
	if err != nil {
		return search.Activation{}, false, fmt.Errorf("run tui: %w", err)
	}
	act, ok := final.(Model).Launched()
	return act, ok, nil
}
