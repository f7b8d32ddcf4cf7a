package internal

import (
	"fmt"
	"time"
)

// 操作模式
type OperationMode string

const (
	ModeMove    OperationMode = "move"
	ModeRestore OperationMode = "restore"
)

// ParseMode 解析操作模式字符串
func ParseMode(s string) (OperationMode, error) {
	switch OperationMode(s) {
	case ModeMove:
		return ModeMove, nil
	case ModeRestore:
		return ModeRestore, nil
	default:
		return "", fmt.Errorf("无效的操作模式: '%s'（可选 move 或 restore）", s)
	}
}

// 迁移对象类型
type EntryKind string

const (
	KindFile EntryKind = "file"
	KindDir  EntryKind = "dir"
)

// 单次迁移记录
type Relocation struct {
	Kind    EntryKind
	Src     string
	Dest    string
	RelPath string
	Size    uint64
	MovedAt time.Time
}

// 统计快照
type StatsSnapshot struct {
	FilesMoved uint64
	DirsMoved  uint64
	TotalSize  uint64
}
