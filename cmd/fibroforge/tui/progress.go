// Package tui provides the interactive progress screen for dataset
// generation.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/fibroforge/internal/dataset"
)

// progressMsg updates the progress screen during generation.
type progressMsg struct {
	Current int
	Total   int
}

// completionMsg is sent when generation completes successfully.
type completionMsg struct {
	Summary  *dataset.Summary
	Duration time.Duration
}

// errorMsg is sent when generation fails.
type errorMsg struct {
	Err error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// model drives the generation progress screen.
type model struct {
	current   int
	total     int
	startTime time.Time
	width     int

	summary  *dataset.Summary
	duration time.Duration
	err      error
	done     bool
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "enter", "esc":
			if m.done {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case progressMsg:
		m.current = msg.Current
		m.total = msg.Total
	case completionMsg:
		m.summary = msg.Summary
		m.duration = msg.Duration
		m.done = true
	case errorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}
	if m.summary != nil {
		return m.completionView()
	}

	var percent float64
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total) * 100
	}

	barWidth := 40
	if m.width > 60 {
		barWidth = m.width / 2
		if barWidth > 60 {
			barWidth = 60
		}
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Generating dataset..."))
	sb.WriteString("\n\n")
	sb.WriteString(renderBar(percent, barWidth))
	sb.WriteString(" ")
	sb.WriteString(percentStyle.Render(fmt.Sprintf("%d%%", int(percent))))
	sb.WriteString("\n\n")
	sb.WriteString(counterStyle.Render(fmt.Sprintf("Image %d/%d", m.current, m.total)))
	sb.WriteString("\n")
	sb.WriteString(counterStyle.Render(fmt.Sprintf("Elapsed: %.1fs", time.Since(m.startTime).Seconds())))
	sb.WriteString("\n\n")
	sb.WriteString(hintStyle.Render("Press Ctrl+C to cancel"))
	return sb.String()
}

func (m *model) completionView() string {
	s := m.summary
	var sb strings.Builder
	sb.WriteString(successStyle.Render("✓ Generation complete!"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  Patients: %d\n", s.NumPatients))
	sb.WriteString(fmt.Sprintf("  Images:   %d\n", s.NumImages))
	sb.WriteString(fmt.Sprintf("  Age:      %.1f ± %.1f years\n", s.AgeMean, s.AgeStd))
	sb.WriteString(fmt.Sprintf("  Duration: %.1fs\n", m.duration.Seconds()))
	sb.WriteString(fmt.Sprintf("  Output:   %s\n", s.OutputDir))
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("Press Enter to exit"))
	return sb.String()
}

func renderBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := barStyle.Render("[" + strings.Repeat("█", filled))
	bar += barEmptyStyle.Render(strings.Repeat("░", width-filled) + "]")
	return bar
}

// Run generates the dataset while displaying the progress screen.
// Generation runs in the background; progress reaches the screen
// through the orchestrator's ProgressCallback.
func Run(opts dataset.GeneratorOptions) error {
	m := &model{startTime: time.Now()}
	p := tea.NewProgram(m)

	opts.Quiet = true
	opts.ProgressCallback = func(current, total int) {
		p.Send(progressMsg{Current: current, Total: total})
	}

	go func() {
		start := time.Now()
		summary, err := dataset.Generate(opts)
		if err != nil {
			p.Send(errorMsg{Err: err})
			return
		}
		p.Send(completionMsg{Summary: summary, Duration: time.Since(start)})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
