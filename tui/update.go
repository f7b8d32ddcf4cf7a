package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/logger"
	"github.com/moyu-x/timovate/pkg/mover"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			// 第一次请求停止并等待当前层级完成，第二次直接退出界面
			if m.state == StateProcessing && !m.stopping {
				m.stopping = true
				m.runner.Stop()
				return m, nil
			}
			m.interrupted = m.state != StateComplete
			return m, tea.Quit
		case "q", "enter":
			if m.state == StateComplete {
				return m, tea.Quit
			}
		}

	case countFilesMsg:
		m.totalFiles = msg.total
		return m.startProcessing()

	case errMsg:
		// 统计失败不影响迁移，只是不显示候选文件数
		logger.Get().Warn().Err(msg).Msg("统计候选文件数失败")
		m.totalFiles = -1
		return m.startProcessing()

	case progressTickMsg:
		if m.state != StateProcessing {
			return m, nil
		}
		m.progress = m.runner.Progress()
		return m, progressTick()

	case processCompleteMsg:
		m.state = StateComplete
		m.endTime = time.Now()
		m.err = msg.err
		m.progress = m.runner.Progress()
		m.logFinalStats()
		return m, tea.Quit

	case spinner.TickMsg:
		if m.state == StateComplete {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) startProcessing() (tea.Model, tea.Cmd) {
	m.state = StateProcessing
	m.startTime = time.Now()
	return m, tea.Batch(executeCmd(m.runner), progressTick())
}

func countFilesCmd(counter func(dir string) (int, error), dir string) tea.Cmd {
	return func() tea.Msg {
		total, err := counter(dir)
		if err != nil {
			return errMsg(err)
		}
		return countFilesMsg{total: total}
	}
}

func executeCmd(r Runner) tea.Cmd {
	return func() tea.Msg {
		return processCompleteMsg{err: r.Execute()}
	}
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

func (m model) modeLabel() string {
	label := "迁移到临时目录"
	if m.runner.Mode() == internal.ModeRestore {
		label = "还原到源目录"
	}
	if m.runner.DryRun() {
		label += "（预览）"
	}
	return label
}

func (m model) renderStats() string {
	var b strings.Builder
	s := m.progress.Stats
	if m.totalFiles >= 0 {
		b.WriteString(fmt.Sprintf("  候选文件数：  %d\n", m.totalFiles))
	}
	b.WriteString(fmt.Sprintf("  当前层级：    %d\n", m.progress.Depth))
	b.WriteString(fmt.Sprintf("  已访问节点：  %d\n", m.progress.Visited))
	b.WriteString(fmt.Sprintf("  已迁移文件：  %d 个\n", s.FilesMoved))
	b.WriteString(fmt.Sprintf("  已迁移目录：  %d 个\n", s.DirsMoved))
	b.WriteString(fmt.Sprintf("  总大小：      %s\n", mover.FormatBytes(s.TotalSize)))
	return b.String()
}

func (m model) renderFinalStats() string {
	var b strings.Builder
	s := m.progress.Stats
	b.WriteString(fmt.Sprintf("  • 迁移文件：   %d 个\n", s.FilesMoved))
	b.WriteString(fmt.Sprintf("  • 迁移目录：   %d 个\n", s.DirsMoved))
	b.WriteString(fmt.Sprintf("  • 总大小：     %s\n", mover.FormatBytes(s.TotalSize)))
	b.WriteString(fmt.Sprintf("  • 遍历层数：   %d\n", m.progress.Depth+1))
	b.WriteString(fmt.Sprintf("  • 总耗时：     %s\n", m.endTime.Sub(m.startTime).Round(time.Millisecond)))
	return b.String()
}

func (m model) logFinalStats() {
	s := m.progress.Stats
	logger.Get().Info().Msg("========== 处理完成 ==========")
	logger.Get().Info().Msgf("迁移文件: %d 个", s.FilesMoved)
	logger.Get().Info().Msgf("迁移目录: %d 个", s.DirsMoved)
	logger.Get().Info().Msgf("总大小: %s", mover.FormatBytes(s.TotalSize))
	logger.Get().Info().Msgf("总耗时: %v", m.endTime.Sub(m.startTime))
	logger.Get().Info().Msg("============================")
}
