package mover

import (
	"fmt"
	"sync/atomic"

	"github.com/moyu-x/timovate/internal"
)

// Stats 迁移统计，三个计数器各自原子递增，彼此之间没有顺序关系
type Stats struct {
	filesMoved atomic.Uint64
	dirsMoved  atomic.Uint64
	totalSize  atomic.Uint64
}

func (s *Stats) FilesMoved() uint64 { return s.filesMoved.Load() }
func (s *Stats) DirsMoved() uint64  { return s.dirsMoved.Load() }
func (s *Stats) TotalSize() uint64  { return s.totalSize.Load() }

func (s *Stats) addFile(size uint64) {
	s.filesMoved.Add(1)
	s.totalSize.Add(size)
}

func (s *Stats) addDir(size uint64) {
	s.dirsMoved.Add(1)
	s.totalSize.Add(size)
}

func (s *Stats) Snapshot() internal.StatsSnapshot {
	return internal.StatsSnapshot{
		FilesMoved: s.FilesMoved(),
		DirsMoved:  s.DirsMoved(),
		TotalSize:  s.TotalSize(),
	}
}

func (s *Stats) String() string {
	return fmt.Sprintf("已处理 %d 个文件和 %d 个目录，总大小: %s",
		s.FilesMoved(), s.DirsMoved(), FormatBytes(s.TotalSize()))
}

// FormatBytes 以 1024 为进制格式化字节数，保留两位小数
func FormatBytes(bytes uint64) string {
	units := [...]string{"B", "KB", "MB", "GB", "TB"}

	size := float64(bytes)
	unit := units[0]
	for _, next := range units[1:] {
		if size < 1024 {
			break
		}
		size /= 1024
		unit = next
	}

	return fmt.Sprintf("%.2f %s", size, unit)
}
