package app

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/journal"
	"github.com/moyu-x/timovate/pkg/logger"
	"github.com/moyu-x/timovate/pkg/mover"
	"github.com/moyu-x/timovate/pkg/progress"
	"github.com/moyu-x/timovate/pkg/runlock"
	"github.com/moyu-x/timovate/tui"
)

type MoveOptions struct {
	Source      string
	Temporary   string
	Days        string
	DryRun      bool
	Verbose     bool
	Mode        internal.OperationMode
	Exclude     []string
	Workers     int
	Journal     bool
	JournalPath string
	LockDir     string
	LogLevel    string
	LogFile     string
	TUI         bool
}

func initLogger(opts *MoveOptions) error {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}

	if !opts.TUI {
		return logger.Init(logLevel, opts.LogFile)
	}

	// TUI 占用终端，日志只写文件
	if opts.LogFile == "" {
		logger.InitWriter(logLevel, io.Discard)
		return nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logger.InitWriter(logLevel, f)
	return nil
}

// terminalAttached TUI 需要标准输出是终端
func terminalAttached() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RunMove 校验参数、准备根目录并执行一次 move 或 restore
func RunMove(opts *MoveOptions) (*mover.Stats, error) {
	o := *opts
	fallback := o.TUI && !terminalAttached()
	if fallback {
		o.TUI = false
	}

	if err := initLogger(&o); err != nil {
		return nil, err
	}
	if fallback {
		logger.Get().Warn().Msg("标准输出不是终端，不显示 TUI 界面")
	}

	return runMove(afero.NewOsFs(), &o)
}

func runMove(fs afero.Fs, opts *MoveOptions) (*mover.Stats, error) {
	// 参数错误必须在任何文件系统修改之前返回
	m, err := mover.New(fs, mover.Options{
		Source:    opts.Source,
		Temporary: opts.Temporary,
		Days:      opts.Days,
		DryRun:    opts.DryRun,
		Verbose:   opts.Verbose,
		Mode:      opts.Mode,
		Exclude:   opts.Exclude,
		Workers:   opts.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化失败: %w", err)
	}

	if err := PrepareRoots(fs, opts.Source, opts.Temporary, m.Mode(), opts.DryRun); err != nil {
		return nil, err
	}

	lock, err := runlock.TryAcquire(opts.LockDir, opts.Source, opts.Temporary)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Get().Warn().Err(err).Msg("释放运行锁失败")
		}
	}()

	var (
		j     *journal.Journal
		runID string
	)
	if opts.Journal && !opts.DryRun {
		j, runID, err = openJournal(opts.JournalPath, m)
		if err != nil {
			logger.Get().Warn().Err(err).Msg("迁移日志不可用，本次执行不记录")
		} else {
			defer j.Close()
			m.SetRecorder(j.Recorder(runID))
		}
	}

	if opts.TUI {
		err = tui.Run(m)
	} else {
		err = execute(m)
	}

	if j != nil {
		if ferr := j.FinishRun(runID, m.Stats().Snapshot()); ferr != nil {
			logger.Get().Warn().Err(ferr).Msg("更新执行记录失败")
		}
	}

	return m.Stats(), err
}

// execute 非 TUI 模式：定期输出进度，收到信号时优雅停止
func execute(m *mover.Mover) error {
	unwatch := handleSignals(m)
	defer unwatch()

	reporter := progress.NewReporter(m.Progress, internal.ProgressLogInterval)
	reporter.Start()
	defer reporter.Stop()

	return m.Execute()
}

func openJournal(path string, m *mover.Mover) (*journal.Journal, string, error) {
	j, err := journal.Open(path)
	if err != nil {
		return nil, "", err
	}

	from, to := m.Roots()
	runID, err := j.BeginRun(m.Mode(), from, to)
	if err != nil {
		j.Close()
		return nil, "", err
	}

	logger.Get().Debug().Str("run_id", runID).Msg("已创建执行记录")
	return j, runID, nil
}
