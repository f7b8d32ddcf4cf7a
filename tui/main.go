package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/moyu-x/timovate/pkg/logger"
	"github.com/moyu-x/timovate/pkg/scanner"
)

var ErrInterrupted = errors.New("界面已中断")

// Run 显示进度界面并执行迁移，返回迁移本身的错误
func Run(r Runner) error {
	return run(tea.NewProgram(newModel(r, osFileCounter)))
}

func osFileCounter(dir string) (int, error) {
	return scanner.NewFileWalker(afero.NewOsFs()).CountFiles([]string{dir})
}

func run(p *tea.Program) error {
	logger.Get().Info().Msg("启动 TUI 界面")

	final, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
		return err
	}

	fm, ok := final.(model)
	if !ok {
		return nil
	}
	if fm.interrupted {
		return ErrInterrupted
	}

	logger.Get().Info().Msg("TUI 正常退出")
	return fm.err
}
