package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/mover"
)

// Runner TUI 驱动的迁移任务，*mover.Mover 实现了该接口
type Runner interface {
	Execute() error
	Stop()
	Progress() mover.Progress
	Roots() (from, to string)
	Mode() internal.OperationMode
	DryRun() bool
}

type State int

const (
	StateCounting State = iota
	StateProcessing
	StateComplete
)

type model struct {
	runner      Runner
	counter     func(dir string) (int, error)
	state       State
	from        string
	to          string
	totalFiles  int
	progress    mover.Progress
	spinner     spinner.Model
	startTime   time.Time
	endTime     time.Time
	stopping    bool
	interrupted bool
	err         error
}

func newModel(r Runner, counter func(dir string) (int, error)) model {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	from, to := r.Roots()

	return model{
		runner:  r,
		counter: counter,
		state:   StateCounting,
		from:    from,
		to:      to,
		spinner: s,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, countFilesCmd(m.counter, m.from))
}
