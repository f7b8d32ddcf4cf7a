package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/moyu-x/timovate/pkg/journal"
	"github.com/moyu-x/timovate/pkg/mover"
)

const timeLayout = "2006-01-02 15:04:05"

type HistoryOptions struct {
	JournalPath string
	Limit       int
	RunID       string
	RelPath     string
	Format      string // table 或 yaml
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// ShowHistory 输出迁移日志：默认列出最近的执行，指定 RunID 或 RelPath 时列出迁移记录
func ShowHistory(w io.Writer, opts *HistoryOptions) error {
	if opts.Format != "" && opts.Format != "table" && opts.Format != "yaml" {
		return fmt.Errorf("无效的输出格式: %s", opts.Format)
	}

	// 只读命令不创建数据库
	exists, err := journal.Exists(opts.JournalPath)
	if err != nil {
		return fmt.Errorf("检查迁移日志失败: %w", err)
	}
	if !exists {
		_, err := fmt.Fprintln(w, "没有执行记录")
		return err
	}

	j, err := journal.Open(opts.JournalPath)
	if err != nil {
		return fmt.Errorf("打开迁移日志失败: %w", err)
	}
	defer j.Close()

	switch {
	case opts.RunID != "":
		entries, err := j.Entries(opts.RunID)
		if err != nil {
			return err
		}
		return output(w, opts.Format, entries, renderEntries)

	case opts.RelPath != "":
		entries, err := j.FindByRelPath(opts.RelPath)
		if err != nil {
			return err
		}
		return output(w, opts.Format, entries, renderEntries)

	default:
		runs, err := j.Runs(opts.Limit)
		if err != nil {
			return err
		}
		return output(w, opts.Format, runs, renderRuns)
	}
}

func output[T any](w io.Writer, format string, items []T, render func(io.Writer, []T) error) error {
	if format != "yaml" {
		return render(w, items)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("输出 YAML 失败: %w", err)
	}
	return encoder.Close()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderRuns(w io.Writer, runs []journal.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "没有执行记录")
		return err
	}

	t := newTable("ID", "模式", "来源", "目标", "开始时间", "结束时间", "文件", "目录", "大小")
	for _, r := range runs {
		finished := "-"
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Format(timeLayout)
		}
		t.Row(
			r.ID,
			r.Mode,
			r.FromRoot,
			r.ToRoot,
			r.StartedAt.Format(timeLayout),
			finished,
			strconv.FormatInt(r.FilesMoved, 10),
			strconv.FormatInt(r.DirsMoved, 10),
			mover.FormatBytes(uint64(r.TotalSize)),
		)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderEntries(w io.Writer, entries []journal.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "没有迁移记录")
		return err
	}

	t := newTable("时间", "类型", "相对路径", "目标路径", "大小", "分类", "MIME")
	for _, e := range entries {
		t.Row(
			e.MovedAt.Format(timeLayout),
			e.Kind,
			e.RelPath,
			e.DestPath,
			mover.FormatBytes(uint64(e.Size)),
			e.Category,
			e.MimeType,
		)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
