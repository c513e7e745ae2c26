package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

var (
	// ErrAborted is returned when the user leaves the prompt with esc or ctrl+c.
	ErrAborted = errors.New("input aborted")

	// ErrEmptyInput is returned when no URL was entered.
	ErrEmptyInput = errors.New("no URL entered")
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Prompt asks for a single line of input.
//
// When in is a terminal a Bubble Tea text input is shown; otherwise one line
// is read from in, so piped input and scripts keep working:
//
//	echo https://cafe.example/menu | grabr
//
// Surrounding whitespace is trimmed.
func Prompt(in io.Reader, out io.Writer, label string) (string, error) {
	if f, ok := in.(*os.File); ok && IsTerminal(f) {
		return promptInteractive(f, out, label)
	}
	return promptLine(in, out, label)
}

func promptLine(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label+" ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return "", ErrEmptyInput
	}
	return value, nil
}

func promptInteractive(in *os.File, out io.Writer, label string) (string, error) {
	p := tea.NewProgram(newPromptModel(label), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m := final.(promptModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.value, nil
}

// promptModel is the Bubble Tea model of the URL prompt.
type promptModel struct {
	label   string
	input   textinput.Model
	value   string
	aborted bool
}

func newPromptModel(label string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "https://cafe.example/menu"
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 60

	return promptModel{
		label: label,
		input: ti,
	}
}

// Init initializes the model.
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit

		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			m.value = value
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m promptModel) View() string {
	if m.value != "" || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.label))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter: start • esc: quit"))
	b.WriteString("\n")
	return b.String()
}
