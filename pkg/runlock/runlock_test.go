package runlock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathFor(t *testing.T) {
	a := PathFor("/locks", "/data/src", "/data/tmp")
	b := PathFor("/locks", "/data/src/", "/data/./tmp")
	if a != b {
		t.Errorf("equivalent roots should share a lock: %s != %s", a, b)
	}

	c := PathFor("/locks", "/data/tmp", "/data/src")
	if a == c {
		t.Error("swapped roots should produce a different lock path")
	}
}

func TestPathForRelativeRoots(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}

	rel := PathFor("/locks", "./src", "tmp/../tmp")
	abs := PathFor("/locks", filepath.Join(wd, "src"), filepath.Join(wd, "tmp"))
	if rel != abs {
		t.Errorf("relative and absolute roots should share a lock: %s != %s", rel, abs)
	}
}

func TestTryAcquire(t *testing.T) {
	lockDir := t.TempDir()

	lock, err := TryAcquire(lockDir, "/src", "/tmp")
	if err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}

	if _, err := os.Stat(lock.Path()); err != nil {
		t.Errorf("lock file should exist: %v", err)
	}

	_, err = TryAcquire(lockDir, "/src", "/tmp")
	if !errors.Is(err, ErrLocked) {
		t.Errorf("second TryAcquire() error = %v, want ErrLocked", err)
	}

	other, err := TryAcquire(lockDir, "/src2", "/tmp")
	if err != nil {
		t.Fatalf("TryAcquire() on other roots error = %v", err)
	}
	defer other.Release()

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	// 锁文件保留，下一次获取使用同一个文件
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Errorf("lock file should be kept after Release(): %v", err)
	}

	again, err := TryAcquire(lockDir, "/src", "/tmp")
	if err != nil {
		t.Fatalf("TryAcquire() after release error = %v", err)
	}
	if again.Path() != lock.Path() {
		t.Errorf("reacquired lock path = %s, want %s", again.Path(), lock.Path())
	}
	if _, err := TryAcquire(lockDir, "/src", "/tmp"); !errors.Is(err, ErrLocked) {
		t.Errorf("TryAcquire() while reacquired error = %v, want ErrLocked", err)
	}
	again.Release()
}
