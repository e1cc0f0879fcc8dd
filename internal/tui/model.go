package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/crates/internal/ui/style"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// VertexState is the displayed state of one query.
type VertexState struct {
	ID     string
	Name   string
	Status string
	Error  string
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	failed    lipgloss.Style
	muted     lipgloss.Style
}

// Model is the Bubble Tea model listing every recorded vertex with its status.
type Model struct {
	tape     TapeSource
	vertices []VertexState
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a new model reading from tape.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Yellow)

	return &Model{
		tape:    tape,
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(style.Yellow),
			completed: lipgloss.NewStyle().Foreground(style.Green),
			failed:    lipgloss.NewStyle().Foreground(style.Red),
			muted:     lipgloss.NewStyle().Foreground(style.Slate),
		},
	}
}

// Init starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		if msg.Update != nil {
			for _, v := range msg.Update.Vertexes {
				m.updateOrAddVertex(v)
			}
		}
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateOrAddVertex(v *progrock.Vertex) {
	idx := -1
	for i := range m.vertices {
		if m.vertices[i].ID == v.Id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.vertices = append(m.vertices, VertexState{ID: v.Id, Name: v.Name, Status: statusRunning})
		idx = len(m.vertices) - 1
	}

	if v.Completed == nil {
		return
	}
	if v.Error != nil {
		m.vertices[idx].Status = statusFailed
		m.vertices[idx].Error = *v.Error
		return
	}
	m.vertices[idx].Status = statusCompleted
}

// Done reports how many vertices finished and how many were recorded.
func (m *Model) Done() (finished, total int) {
	for _, v := range m.vertices {
		if v.Status != statusRunning {
			finished++
		}
	}
	return finished, len(m.vertices)
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var s strings.Builder

	start := 0
	if len(m.vertices) > m.height-1 && m.height > 1 {
		start = len(m.vertices) - (m.height - 1)
	}

	for _, v := range m.vertices[start:] {
		var icon string
		switch v.Status {
		case statusCompleted:
			icon = m.styles.completed.Render(style.Check)
		case statusFailed:
			icon = m.styles.failed.Render(style.Cross)
		default:
			icon = m.spinner.View()
		}

		line := fmt.Sprintf("%s %s", icon, v.Name)
		if v.Error != "" {
			line += " " + m.styles.muted.Render(firstLine(v.Error))
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	finished, total := m.Done()
	s.WriteString(m.styles.muted.Render(fmt.Sprintf("%d/%d platforms", finished, total)))
	s.WriteString("\n")

	return s.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
