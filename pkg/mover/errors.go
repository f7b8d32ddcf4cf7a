package mover

import (
	"errors"
	"fmt"
)

// ErrSameRoot 源目录与临时目录相同
var ErrSameRoot = errors.New("源目录和临时目录不能相同")

// ErrStopped 执行被 Stop 中止，已完成的层级不会回滚
var ErrStopped = errors.New("执行已中止")

// RelocateError 迁移失败，会终止本次执行
type RelocateError struct {
	Op   string // mkdir 或 rename
	Src  string
	Dest string
	Err  error
}

func (e *RelocateError) Error() string {
	if e.Op == "mkdir" {
		return fmt.Sprintf("创建目录失败，无法移动 %s 到 %s: %v", e.Src, e.Dest, e.Err)
	}
	return fmt.Sprintf("移动 %s 到 %s 失败: %v", e.Src, e.Dest, e.Err)
}

func (e *RelocateError) Unwrap() error {
	return e.Err
}
