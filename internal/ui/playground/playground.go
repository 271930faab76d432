// Package playground provides an interactive expression evaluator: type
// a dimension or unit expression (or a conversion/equivalents query) and
// see the engine's report inline.
package playground

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dimens/internal/config"
	"dimens/internal/presentation"
	"dimens/internal/registry"
)

// maxHistory bounds how many evaluated entries stay on screen.
const maxHistory = 50

// entry is one evaluated query with its rendered result.
type entry struct {
	query  string
	output string
	failed bool
}

// Model holds the playground state.
type Model struct {
	reg      *registry.Set
	renderer *presentation.Renderer
	search   config.SearchConfig

	input   textinput.Model
	history []entry
	recall  int // index into history while browsing with up/down; len(history) = live input

	width    int
	height   int
	quitting bool
}

// New creates a playground over the given catalog.
func New(reg *registry.Set, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = `dimension or unit expression, "convert 2 kg g", "equiv F", "help"`
	ti.Prompt = "> "
	ti.Focus()

	return Model{
		reg:      reg,
		renderer: presentation.NewRenderer(cfg.Display.Color, cfg.Display.Form),
		search:   cfg.Search,
		input:    ti,
		recall:   0,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 20)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			if query == "quit" || query == "exit" {
				m.quitting = true
				return m, tea.Quit
			}
			output, failed := m.evaluate(query)
			m.history = append(m.history, entry{query: query, output: output, failed: failed})
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
			m.recall = len(m.history)
			m.input.SetValue("")
			return m, nil

		case "up":
			if m.recall > 0 {
				m.recall--
				m.input.SetValue(m.history[m.recall].query)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.recall < len(m.history) {
				m.recall++
				if m.recall == len(m.history) {
					m.input.SetValue("")
				} else {
					m.input.SetValue(m.history[m.recall].query)
					m.input.CursorEnd()
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render("dimens playground")
	b.WriteString(title + "\n\n")

	visible := m.visibleHistory()
	for _, e := range visible {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("> "+e.query) + "\n")
		b.WriteString(e.output + "\n\n")
	}

	b.WriteString(m.input.View() + "\n")

	footer := lipgloss.NewStyle().Faint(true).
		Render("enter: evaluate  │  up/down: history  │  esc: quit")
	b.WriteString(footer)

	return b.String()
}

// visibleHistory trims old entries so the transcript fits the window.
func (m Model) visibleHistory() []entry {
	if m.height == 0 {
		return m.history
	}
	budget := m.height - 5 // title, input, footer, padding
	total := 0
	start := len(m.history)
	for start > 0 {
		e := m.history[start-1]
		lines := strings.Count(e.output, "\n") + 3
		if total+lines > budget {
			break
		}
		total += lines
		start--
	}
	return m.history[start:]
}
