package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sgdraw/pkg/pipeline"
)

// Progress styles
var (
	progressBarStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	progressRestStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Progress Model - Live optimization view
// =============================================================================

// progressMsg carries one optimizer iteration into the view.
type progressMsg struct {
	iteration int
	eta       float64
	stress    float64
}

// layoutDoneMsg ends the view when the pipeline returns.
type layoutDoneMsg struct{ err error }

// progressModel is the bubbletea model for the live layout view.
type progressModel struct {
	total     int
	iteration int
	eta       float64
	stress    float64
	done      bool
}

func newProgressModel(total int) progressModel {
	return progressModel{total: total}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case progressMsg:
		m.iteration = msg.iteration
		m.eta = msg.eta
		m.stress = msg.stress
	case layoutDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Computing layout"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n",
		m.bar(), StyleDim.Render(fmt.Sprintf("%d/%d", m.iteration, m.total))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("stress"), StyleValue.Render(fmt.Sprintf("%.5g", m.stress))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("step  "), StyleValue.Render(fmt.Sprintf("%.5g", m.eta))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  q quit  ctrl+c cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m progressModel) bar() string {
	const width = 30
	filled := 0
	if m.total > 0 {
		filled = m.iteration * width / m.total
	}
	if filled > width {
		filled = width
	}
	return progressBarStyle.Render(strings.Repeat("█", filled)) +
		progressRestStyle.Render(strings.Repeat("░", width-filled))
}

// =============================================================================
// Runner Integration
// =============================================================================

// runWithProgress runs the pipeline with a live progress view on stderr.
// Quitting the view cancels the run.
func runWithProgress(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := opts.Iterations
	if total <= 0 {
		total = pipeline.DefaultIterations
	}

	p := tea.NewProgram(newProgressModel(total), tea.WithOutput(os.Stderr))
	opts.OnIteration = func(t int, eta, stress float64) {
		p.Send(progressMsg{iteration: t + 1, eta: eta, stress: stress})
	}

	var (
		res    *pipeline.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, runErr = runner.Run(ctx, opts)
		p.Send(layoutDoneMsg{err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress view: %w", err)
	}

	// The view may have been quit mid-run; stop the pipeline and wait.
	cancel()
	<-done

	return res, runErr
}
