package mover

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/timovate/pkg/logger"
)

// directoryQualifies 判断目录能否作为整体迁移：
// 所有未被排除的非符号链接文件都必须满足时间条件，且没有任何被排除的子孙节点。
// 使用显式栈代替递归，遇到第一个不满足的节点立即返回。
func (m *Mover) directoryQualifies(dir string) bool {
	if m.isExcluded(dir) {
		m.detail().Msgf("目录匹配排除规则，不整体移动: %s", dir)
		return false
	}

	stack := []string{dir}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(m.fs, current)
		if err != nil {
			// 状态不确定时不移动
			logger.Get().Error().Err(err).Msgf("读取目录失败: %s", current)
			return false
		}

		for _, entry := range entries {
			path := filepath.Join(current, entry.Name())

			if m.isExcluded(path) {
				m.detail().Msgf("包含被排除的路径，目录不整体移动: %s", path)
				return false
			}

			mode := entry.Mode()
			switch {
			case mode&os.ModeSymlink != 0:
				continue
			case mode.IsDir():
				stack = append(stack, path)
			case mode.IsRegular():
				if !m.fileMatches(entry) {
					return false
				}
			default:
				m.detail().Msgf("跳过特殊文件: %s", path)
			}
		}
	}

	return true
}
