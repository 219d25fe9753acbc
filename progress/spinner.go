package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aidooit/qualidoo/qualidoo"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

type statusMsg string

type stopMsg struct{}

type spinnerModel struct {
	spinner  spinner.Model
	status   string
	quitting bool
}

func newSpinnerModel() spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{spinner: s}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case stopMsg:
		// Blank the view before quitting so the report starts on a clean line.
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	if m.status == "" {
		return fmt.Sprintf("%s Analyzing...", m.spinner.View())
	}
	return fmt.Sprintf("%s Analyzing... (%s)", m.spinner.View(), m.status)
}

// SpinnerSink animates a spinner with the latest status beside it. The
// underlying program starts on the first status and runs until Stop, so a
// poll loop that fails before its first observation never draws anything.
type SpinnerSink struct {
	w       io.Writer
	program *tea.Program
	done    chan struct{}
	started bool
}

func NewSpinnerSink(w io.Writer) *SpinnerSink {
	return &SpinnerSink{w: w}
}

// OnStatus starts the spinner if needed and pushes the status to it.
func (s *SpinnerSink) OnStatus(status qualidoo.JobStatus) {
	if !s.started {
		s.program = tea.NewProgram(
			newSpinnerModel(),
			tea.WithOutput(s.w),
			tea.WithInput(nil),
		)
		s.done = make(chan struct{})
		go func() {
			defer close(s.done)
			// Render errors only lose the animation, never the analysis.
			_, _ = s.program.Run()
		}()
		s.started = true
	}
	s.program.Send(statusMsg(status.Status))
}

// Stop tears the spinner down and waits for the terminal to be restored.
// Safe to call when the spinner never started.
func (s *SpinnerSink) Stop() {
	if !s.started {
		return
	}
	s.program.Send(stopMsg{})
	<-s.done
	s.started = false
}
