package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/doubleforge/entity-doubles/backend"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	capStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectMethod modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	double   *backend.Double
	methods  []string
	selected int
	input    textinput.Model
	result   string
	err      error
	state    modelState
}

func newInteractiveModel(d *backend.Double) *interactiveModel {
	return &interactiveModel{
		double:  d,
		methods: d.Methods(),
		state:   stateSelectMethod,
	}
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectMethod && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectMethod && m.selected < len(m.methods)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectMethod:
				m.prepareInput()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callMethod

			case stateShowResult:
				m.state = stateSelectMethod
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectMethod
			case stateShowResult:
				m.state = stateSelectMethod
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Placeholder = "comma-separated arguments, empty for none"
	ti.Prompt = "args: "
	ti.Width = 48
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) callMethod() tea.Msg {
	method := m.methods[m.selected]

	var args []any
	if raw := strings.TrimSpace(m.input.Value()); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			args = append(args, parseScalar(strings.TrimSpace(a)))
		}
	}

	result, err := m.double.Call(method, args...)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: strings.TrimRight(spew.Sdump(result), "\n")}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Double Inspector"))
	b.WriteString(" ")
	b.WriteString(m.double.EntityType())
	b.WriteString(" via ")
	b.WriteString(m.double.Backend())
	b.WriteString("\n")
	b.WriteString(capStyle.Render(strings.Join(m.double.Capabilities(), " ")))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectMethod:
		b.WriteString("Select a method to call:\n\n")
		for i, name := range m.methods {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + name))
			} else {
				b.WriteString(cursor + methodStyle.Render(name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Calling %s\n\n", methodStyle.Render(m.methods[m.selected])))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter call • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", methodStyle.Render(m.methods[m.selected])))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(d *backend.Double) error {
	p := tea.NewProgram(newInteractiveModel(d), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
