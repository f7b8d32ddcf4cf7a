// Package runlock 防止同一对目录被两个进程同时处理
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"
)

// ErrLocked 另一个进程正在处理同一对目录
var ErrLocked = errors.New("另一个进程正在处理相同的目录")

type Lock struct {
	flock *flock.Flock
	path  string
}

// PathFor 返回 source/temporary 目录对对应的锁文件路径
// move 与 restore 共用同一把锁，相对路径按当前目录转换为绝对路径
func PathFor(lockDir, source, temporary string) string {
	key := absPath(source) + "\x00" + absPath(temporary)
	return filepath.Join(lockDir, fmt.Sprintf("timovate-%016x.lock", xxhash.Sum64String(key)))
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// TryAcquire 非阻塞地获取锁，lockDir 为空时使用系统临时目录
func TryAcquire(lockDir, source, temporary string) (*Lock, error) {
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	path := PathFor(lockDir, source, temporary)

	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("获取锁失败 %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	return &Lock{flock: fl, path: path}, nil
}

func (l *Lock) Path() string {
	return l.path
}

// Release 释放锁，锁文件不删除，同一目录对始终对应同一个文件
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("释放锁失败 %s: %w", l.path, err)
	}
	return nil
}
