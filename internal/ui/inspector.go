package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dtype/internal/diag"
	"dtype/internal/diagfmt"
	"dtype/internal/script"
)

// InspectorConfig wires the inspector to a runner. Output must be the
// runner's Out and Diags must receive the runner's diagnostics; both are
// drained after every command.
type InspectorConfig struct {
	Runner *script.Runner
	Output *bytes.Buffer
	Diags  *diag.Bag
	Pretty diagfmt.PrettyOpts
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	statusLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8")).Padding(0, 1)
	echoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	diagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Inspector is an interactive session on a single boxed value: a prompt
// accepting script commands, a scrolling transcript and a status line
// showing the current tag, length and rendering.
type Inspector struct {
	cfg        InspectorConfig
	input      textinput.Model
	vp         viewport.Model
	transcript []string
	width      int
	quitting   bool
}

func NewInspector(cfg InspectorConfig) *Inspector {
	in := textinput.New()
	in.Prompt = "dtype> "
	in.Placeholder = "set int 42"
	in.Focus()
	return &Inspector{
		cfg:   cfg,
		input: in,
		vp:    viewport.New(80, 16),
		width: 80,
	}
}

func (m *Inspector) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			if m.Submit(line) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.vp.Width = msg.Width
		// header, status line, prompt and two separators
		m.vp.Height = max(msg.Height-5, 3)
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Submit executes one line and appends the echo, the command output and any
// diagnostics to the transcript. It reports whether the session should end.
func (m *Inspector) Submit(line string) bool {
	text := strings.TrimSpace(line)
	switch text {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		m.transcript = append(m.transcript, echoStyle.Render("> help"), helpText)
		m.refresh()
		return false
	}
	m.transcript = append(m.transcript, echoStyle.Render("> "+text))
	if st, ok := script.ParseLine(text, diag.BagReporter{Bag: m.cfg.Diags}); ok {
		if err := m.cfg.Runner.Exec(st); err != nil {
			m.transcript = append(m.transcript, diagStyle.Render(err.Error()))
		}
	}
	m.drain()
	m.refresh()
	return false
}

const helpText = `commands: set <type> <literal> | set custom <hex>... | get <type> | resize <n>
          poke <off> <hex> | peek <off> <n> | clear | print | debug | type | len
          option <errors|warnings|warn-as-error|exit-on-error> <on|off> | quit`

func (m *Inspector) drain() {
	if out := m.cfg.Output; out != nil && out.Len() > 0 {
		m.transcript = append(m.transcript, strings.TrimRight(out.String(), "\n"))
		out.Reset()
	}
	if bag := m.cfg.Diags; bag != nil && bag.Len() > 0 {
		for _, d := range bag.Items() {
			block := strings.Trim(diagfmt.Render(d, m.cfg.Pretty), "\n")
			m.transcript = append(m.transcript, diagStyle.Render(block))
		}
		bag.Reset()
	}
}

func (m *Inspector) refresh() {
	m.vp.SetContent(strings.Join(m.transcript, "\n"))
	m.vp.GotoBottom()
}

// Transcript returns the lines shown so far, styles included.
func (m *Inspector) Transcript() []string {
	return m.transcript
}

// StatusLine summarises the value: tag name and code, length, rendering.
func (m *Inspector) StatusLine() string {
	v := m.cfg.Runner.Value()
	s := fmt.Sprintf("tag %s (%d)  len %d  value %s", v.TypeName(), uint8(v.Tag()), v.Len(), v.String())
	return truncate(s, m.width-2)
}

func (m *Inspector) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("dtype inspector"))
	b.WriteString("  (help, quit)\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(statusLineStyle.Render(m.StatusLine()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}
