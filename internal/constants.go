package internal

import "time"

const (
	// 日志数据库默认路径
	DefaultJournalPath = "~/.timovate/journal.db"

	// 默认时间条件，与 find -mtime 一致
	DefaultDays = "+30"

	// 每天的秒数
	SecondsPerDay = 24 * 60 * 60
)

// 非 TUI 模式下输出进度日志的间隔
const ProgressLogInterval = 5 * time.Second
