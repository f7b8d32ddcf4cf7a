package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	switch m.state {
	case StateCounting:
		return m.countingView()
	case StateProcessing:
		return m.processingView()
	case StateComplete:
		return m.completeView()
	default:
		return "未知状态"
	}
}

func (m model) header() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("来源：") + filePathStyle.Render(m.from) + "\n")
	b.WriteString(labelStyle.Render("目标：") + filePathStyle.Render(m.to) + "\n")
	return b.String()
}

func (m model) countingView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 正在统计候选文件...") + "\n\n")
	b.WriteString(m.header() + "\n")
	b.WriteString(m.spinner.View() + " 正在遍历来源目录\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}

func (m model) processingView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔄 "+m.modeLabel()) + "\n\n")
	b.WriteString(m.header() + "\n")
	if m.stopping {
		b.WriteString(m.spinner.View() + " 正在停止，等待当前层级完成...\n\n")
	} else {
		b.WriteString(m.spinner.View() + " 正在处理...\n\n")
	}
	b.WriteString(statsBoxStyle.Render(m.renderStats()) + "\n\n")
	b.WriteString(hintStyle.Render("Ctrl+C 停止，再按一次退出界面") + "\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}

func (m model) completeView() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(failureTitleStyle.Render("❌ 处理中止") + "\n\n")
	} else {
		b.WriteString(successTitleStyle.Render("✅ 处理完成！") + "\n\n")
	}

	b.WriteString(m.header() + "\n")
	b.WriteString(statsBoxStyle.Render(m.renderFinalStats()) + "\n")

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}
