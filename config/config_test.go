package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moyu-x/timovate/internal"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("切换目录失败: %v", err)
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Move.Days != internal.DefaultDays {
		t.Errorf("Move.Days = %q, want %q", c.Move.Days, internal.DefaultDays)
	}
	if !c.Journal.Enabled {
		t.Error("Journal should be enabled by default")
	}
	if c.Journal.Path != internal.DefaultJournalPath {
		t.Errorf("Journal.Path = %q", c.Journal.Path)
	}
	if c.Performance.Workers <= 0 {
		t.Errorf("Performance.Workers = %d, want > 0", c.Performance.Workers)
	}
	if c.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", c.Logging.Level)
	}
	if Get() != c {
		t.Error("Get() should return the loaded config")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `move:
  days: "-7"
  exclude:
    - '\.log$'
    - '/cache/'
performance:
  workers: 3
journal:
  enabled: false
  path: /var/lib/timovate/journal.db
logging:
  level: debug
  file: /tmp/timovate.log
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if c.Move.Days != "-7" {
		t.Errorf("Move.Days = %q, want -7", c.Move.Days)
	}
	if len(c.Move.Exclude) != 2 || c.Move.Exclude[0] != `\.log$` {
		t.Errorf("Move.Exclude = %v", c.Move.Exclude)
	}
	if c.Performance.Workers != 3 {
		t.Errorf("Performance.Workers = %d, want 3", c.Performance.Workers)
	}
	if c.Journal.Enabled {
		t.Error("Journal.Enabled should be false")
	}
	if c.Journal.Path != "/var/lib/timovate/journal.db" {
		t.Errorf("Journal.Path = %q", c.Journal.Path)
	}
	if c.Logging.Level != "debug" || c.Logging.File != "/tmp/timovate.log" {
		t.Errorf("Logging = %+v", c.Logging)
	}
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("move:\n  days: \"+10\"\n"), 0644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("TIMOVATE_MOVE_DAYS", "+90")

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if c.Move.Days != "+90" {
		t.Errorf("Move.Days = %q, want +90 from environment", c.Move.Days)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for explicitly given missing config file")
	}
}
