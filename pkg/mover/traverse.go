package mover

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/timovate/pkg/logger"
	"github.com/moyu-x/timovate/pkg/pool"
)

// workItem 待访问的节点：绝对路径与相对于遍历根目录的路径
type workItem struct {
	src string
	rel string
}

type outcomeKind int

const (
	outcomeNone      outcomeKind = iota // 排除、符号链接、特殊文件或不匹配的文件
	outcomeRelocated                    // 已作为整体迁移
	outcomeDescend                      // 目录不满足整体迁移，子节点进入下一层
)

type outcome struct {
	kind     outcomeKind
	children []workItem
	err      error
}

// traverse 按层广度优先遍历：每层全部并行处理完成后才进入下一层
func (m *Mover) traverse(p *pool.LevelPool, from, to string) error {
	queue := m.readChildren(from, "")

	for depth := 0; len(queue) > 0; depth++ {
		if m.stopped.Load() {
			logger.Get().Warn().Int("depth", depth).Int("pending", len(queue)).Msg("收到停止请求，不再处理后续层级")
			return ErrStopped
		}
		m.depth.Store(int64(depth))
		logger.Get().Debug().Int("depth", depth).Int("entries", len(queue)).Msg("处理层级")

		level := queue
		queue = nil

		results := pool.Run(p, level, func(item workItem) outcome {
			defer m.visited.Add(1)
			return m.visit(item, to)
		})

		for _, r := range results {
			if r.err != nil {
				return r.err
			}
			queue = append(queue, r.children...)
		}
	}

	return nil
}

// readChildren 列出目录的直接子节点，读取失败时记录日志并返回空
func (m *Mover) readChildren(dir, rel string) []workItem {
	entries, err := afero.ReadDir(m.fs, dir)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("读取目录失败: %s", dir)
		return nil
	}

	children := make([]workItem, 0, len(entries))
	for _, entry := range entries {
		children = append(children, workItem{
			src: filepath.Join(dir, entry.Name()),
			rel: filepath.Join(rel, entry.Name()),
		})
	}
	return children
}

func (m *Mover) visit(item workItem, to string) outcome {
	if m.isExcluded(item.src) {
		m.detail().Msgf("匹配排除规则，跳过: %s", item.src)
		return outcome{}
	}

	info, err := m.lstat(item.src)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("读取元数据失败: %s", item.src)
		return outcome{}
	}

	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		m.detail().Msgf("跳过符号链接: %s", item.src)
		return outcome{}

	case mode.IsDir():
		return m.visitDirectory(item, to)

	case mode.IsRegular():
		if !m.fileMatches(info) {
			return outcome{}
		}
		if err := m.relocate(item.src, filepath.Join(to, item.rel), item.rel, false); err != nil {
			return outcome{err: err}
		}
		return outcome{kind: outcomeRelocated}

	default:
		m.detail().Msgf("跳过特殊文件: %s", item.src)
		return outcome{}
	}
}

func (m *Mover) visitDirectory(item workItem, to string) outcome {
	if m.directoryQualifies(item.src) {
		if err := m.relocate(item.src, filepath.Join(to, item.rel), item.rel, true); err != nil {
			return outcome{err: err}
		}
		return outcome{kind: outcomeRelocated}
	}

	return outcome{kind: outcomeDescend, children: m.readChildren(item.src, item.rel)}
}
