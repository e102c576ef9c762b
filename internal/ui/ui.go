package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyra/internal/tasks"
)

// maxRecent bounds the event tail shown under the progress bar.
const maxRecent = 8

// progressUpdateMsg wraps one pipeline event.
type progressUpdateMsg tasks.ProgressUpdate

// pipelineDoneMsg signals that the update channel closed.
type pipelineDoneMsg struct{}

// Model renders live pipeline progress. It implements bubbletea's standard
// Init/Update/View pattern.
type Model struct {
	cancel  context.CancelFunc
	updates <-chan tasks.ProgressUpdate
	spin    spinner.Model
	bar     progress.Model
	title   string
	current tasks.ProgressUpdate
	recent  []string
	width   int
	done    bool
}

// NewModel creates a progress view consuming updates. cancel is invoked when
// the user quits early so the pipeline goroutine stops.
func NewModel(title string, updates <-chan tasks.ProgressUpdate, cancel context.CancelFunc) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ok

	return &Model{
		cancel:  cancel,
		updates: updates,
		spin:    s,
		bar:     progress.New(progress.WithDefaultGradient()),
		title:   title,
	}
}

// Init starts the spinner and the first channel read.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForProgress())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case progressUpdateMsg:
		m.current = tasks.ProgressUpdate(msg)
		m.recent = append(m.recent, m.current.Message)
		if len(m.recent) > maxRecent {
			m.recent = m.recent[len(m.recent)-maxRecent:]
		}
		return m, m.waitForProgress()

	case pipelineDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the progress display.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(m.title))
	b.WriteString("\n")

	if m.done {
		b.WriteString(styles.ok.Render("✓ Run complete"))
		b.WriteString("\n")
		return b.String()
	}

	percent := 0.0
	if m.current.Total > 0 {
		percent = float64(m.current.Step) / float64(m.current.Total)
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", m.spin.View(), m.current.Message))
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString("\n\n")

	for _, line := range m.recent {
		b.WriteString(styles.help.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("q to cancel"))
	b.WriteString("\n")
	return b.String()
}

// waitForProgress blocks on the update channel as a tea command.
func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return pipelineDoneMsg{}
		}
		return progressUpdateMsg(update)
	}
}
