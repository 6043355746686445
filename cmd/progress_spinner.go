package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const simulationLabel = "Simulating store days"

// simulationProgressMsg is sent after every completed day.
type simulationProgressMsg struct {
	day   int
	total int
}

type simulationFinishedMsg struct {
	err error
}

type simulationProgressModel struct {
	spinner  spinner.Model
	counter  lipgloss.Style
	simulate tea.Cmd
	day      int
	total    int
	err      error
	finished bool
}

func newSimulationProgressModel(simulate tea.Cmd) simulationProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return simulationProgressModel{
		spinner:  s,
		counter:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		simulate: simulate,
	}
}

func (m simulationProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.simulate)
}

func (m simulationProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case simulationProgressMsg:
		m.day = msg.day
		m.total = msg.total
		return m, nil
	case simulationFinishedMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m simulationProgressModel) View() string {
	if m.finished {
		return ""
	}
	if m.total == 0 {
		return fmt.Sprintf("%s %s...", m.spinner.View(), simulationLabel)
	}

	return fmt.Sprintf("%s %s %s", m.spinner.View(), simulationLabel, m.counter.Render(fmt.Sprintf("day %d/%d", m.day, m.total)))
}

// runSimulationProgress runs simulate behind a spinner on output. simulate
// receives a callback that advances the day counter.
func runSimulationProgress(ctx context.Context, output io.Writer, simulate func(context.Context, func(day, total int)) error) error {
	var p *tea.Program
	simulateCmd := func() tea.Msg {
		err := simulate(ctx, func(day, total int) {
			p.Send(simulationProgressMsg{day: day, total: total})
		})
		return simulationFinishedMsg{err: err}
	}

	p = tea.NewProgram(
		newSimulationProgressModel(simulateCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(simulationProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
