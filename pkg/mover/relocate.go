package mover

import (
	"os"
	"path/filepath"
	"time"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/logger"
)

func kindOf(isDir bool) internal.EntryKind {
	if isDir {
		return internal.KindDir
	}
	return internal.KindFile
}

func kindLabel(isDir bool) string {
	if isDir {
		return "目录"
	}
	return "文件"
}

// relocate 迁移单个文件或目录并更新统计
func (m *Mover) relocate(src, dest, rel string, isDir bool) error {
	if m.dryRun {
		return m.simulate(src, dest, isDir)
	}

	parent := filepath.Dir(dest)
	if err := m.fs.MkdirAll(parent, 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建目录失败: %s", parent)
		return &RelocateError{Op: "mkdir", Src: src, Dest: dest, Err: err}
	}

	if err := m.fs.Rename(src, dest); err != nil {
		logger.Get().Error().Err(err).Msgf("移动 %s 到 %s 失败", src, dest)
		return &RelocateError{Op: "rename", Src: src, Dest: dest, Err: err}
	}

	m.detail().Msgf("已移动%s %s 到 %s", kindLabel(isDir), src, dest)

	info, err := m.lstat(dest)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("读取元数据失败: %s", dest)
		return nil
	}
	size := m.credit(dest, info, isDir)

	if m.recorder != nil {
		err := m.recorder.Record(internal.Relocation{
			Kind:    kindOf(isDir),
			Src:     src,
			Dest:    dest,
			RelPath: rel,
			Size:    size,
			MovedAt: time.Now(),
		})
		if err != nil {
			logger.Get().Warn().Err(err).Msgf("写入迁移记录失败: %s", dest)
		}
	}

	return nil
}

// simulate 预览模式：不修改文件系统，按源路径的元数据统计
func (m *Mover) simulate(src, dest string, isDir bool) error {
	logger.Get().Info().Msgf("[DRY RUN] 将移动%s %s 到 %s", kindLabel(isDir), src, dest)

	info, err := m.lstat(src)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("读取元数据失败: %s", src)
		return nil
	}

	m.credit(src, info, isDir)
	return nil
}

// credit 计入统计，目录按其下所有普通文件大小之和计算
func (m *Mover) credit(path string, info os.FileInfo, isDir bool) uint64 {
	if !isDir {
		size := uint64(info.Size())
		m.stats.addFile(size)
		return size
	}

	size, err := m.walker.DirSize(path)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("统计目录大小失败: %s", path)
	}
	m.stats.addDir(size)
	return size
}
