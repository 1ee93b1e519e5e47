package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Status is the state of one script in a `dtype run --ui` session.
type Status uint8

const (
	StatusQueued Status = iota
	StatusParsing
	StatusRunning
	StatusDone
	StatusError
)

// statusInfo holds how a status is shown and how much of a script's work
// it accounts for in the overall bar.
var statusInfo = [...]struct {
	name   string
	color  lipgloss.Color
	weight float64
}{
	StatusQueued:  {"queued", "7", 0},
	StatusParsing: {"parsing", "6", 0.2},
	StatusRunning: {"running", "6", 0.5},
	StatusDone:    {"done", "2", 1},
	StatusError:   {"error", "1", 1},
}

func (s Status) String() string {
	if int(s) < len(statusInfo) {
		return statusInfo[s].name
	}
	return ""
}

func (s Status) finished() bool { return s == StatusDone || s == StatusError }

// Event reports progress of one script. Stmts counts executed statements
// and is only meaningful for Done and Error.
type Event struct {
	File   string
	Status Status
	Stmts  int
}

type runItem struct {
	path   string
	status Status
	stmts  int
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

type eventMsg Event
type doneMsg struct{}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []runItem
	index   map[string]int
	width   int
	done    bool
}

// NewProgressModel renders the progress of a set of scripts fed through
// events. The program quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]runItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, runItem{path: file})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.apply(Event(msg))
		return m, tea.Batch(cmd, m.listen())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	const statusWidth = 10
	header := m.spinner.View() + " " + m.title
	bar := m.prog.View()
	if m.done {
		header, bar = "done: "+m.title, m.prog.ViewAs(1.0)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	nameWidth := max(m.width-statusWidth-16, 20)
	for _, item := range m.items {
		fmt.Fprintf(&b, "  %s %s", statusStyle(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status)), truncate(item.path, nameWidth))
		if item.status.finished() {
			fmt.Fprintf(&b, "  (%d stmts)", item.stmts)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(bar)
	b.WriteByte('\n')
	return b.String()
}

func (m *progressModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	m.items[idx].status = ev.Status
	m.items[idx].stmts = ev.Stmts
	return m.prog.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if int(item.status) < len(statusInfo) {
			total += statusInfo[item.status].weight
		}
	}
	return total / float64(len(m.items))
}

func statusStyle(s Status) lipgloss.Style {
	c := lipgloss.Color("7")
	if int(s) < len(statusInfo) {
		c = statusInfo[s].color
	}
	return lipgloss.NewStyle().Foreground(c)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// the tail counts against width
	return runewidth.Truncate(value, width, "...")
}
