package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	wasmcaps "github.com/wippyai/wasm-caps"
	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	symbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	summary  *capability.Summary
	filename string
	filter   textinput.Model
	selected int
	state    modelState
}

type modelState int

const (
	stateSelectBucket modelState = iota
	stateShowEntries
	stateFilter
)

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "symbol"
	ti.Prompt = "filter: "
	ti.Width = 40

	return &interactiveModel{
		filename: filename,
		filter:   ti,
		state:    stateSelectBucket,
	}
}

type loadedMsg struct {
	err     error
	summary *capability.Summary
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadSummary
}

func (m *interactiveModel) loadSummary() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: errors.Read(m.filename, err)}
	}
	s, err := wasmcaps.Inspect(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{summary: s}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectBucket && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectBucket && m.selected < len(capability.Buckets)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectBucket && m.summary != nil {
				m.state = stateShowEntries
			}

		case "/":
			if m.state == stateShowEntries {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "esc":
			if m.state == stateShowEntries {
				m.state = stateSelectBucket
				m.filter.SetValue("")
			}
		}

	case loadedMsg:
		m.err = msg.err
		m.summary = msg.summary
	}

	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filter.Blur()
		m.state = stateShowEntries
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// visibleEntries returns the entries of the selected bucket matching the filter.
func (m *interactiveModel) visibleEntries() []capability.Entry {
	entries := m.summary.Entries(capability.Buckets[m.selected])
	q := strings.TrimSpace(m.filter.Value())
	if q == "" {
		return entries
	}
	var out []capability.Entry
	for _, e := range entries {
		if strings.Contains(e.ID(), q) {
			out = append(out, e)
		}
	}
	return out
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.summary == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("WASM Capabilities"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectBucket:
		fmt.Fprintf(&b, "%d imports, %d WASI\n\n", m.summary.Total(), m.summary.WASICount())
		for i, bucket := range capability.Buckets {
			line := fmt.Sprintf("%-20s %d", bucket.Label(), m.summary.Count(bucket))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else if !m.summary.Uses(bucket) {
				b.WriteString(emptyStyle.Render("  " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter show • q quit"))

	case stateShowEntries, stateFilter:
		bucket := capability.Buckets[m.selected]
		fmt.Fprintf(&b, "%s:\n\n", symbolStyle.Render(bucket.Label()))
		entries := m.visibleEntries()
		if len(entries) == 0 {
			b.WriteString(emptyStyle.Render("  (none)"))
			b.WriteString("\n")
		}
		for _, e := range entries {
			b.WriteString("  ")
			b.WriteString(symbolStyle.Render(e.ID()))
			b.WriteString(" ")
			b.WriteString(kindStyle.Render(e.Kind.String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter apply • esc done"))
		} else {
			b.WriteString(helpStyle.Render("/ filter • esc back • q quit"))
		}
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	return interactiveResult(p.Run())
}

// interactiveResult surfaces a load failure shown in the browser as the
// command's error once the program exits.
func interactiveResult(final tea.Model, err error) error {
	if err != nil {
		return err
	}
	if m, ok := final.(*interactiveModel); ok {
		return m.err
	}
	return nil
}
