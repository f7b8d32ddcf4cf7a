package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/classifier"
	"github.com/moyu-x/timovate/pkg/logger"
)

// Run 一次执行的记录
type Run struct {
	ID         string     `gorm:"primaryKey" yaml:"id"`
	Mode       string     `gorm:"not null" yaml:"mode"`
	FromRoot   string     `gorm:"not null" yaml:"from"`
	ToRoot     string     `gorm:"not null" yaml:"to"`
	StartedAt  time.Time  `gorm:"not null;index" yaml:"started_at"`
	FinishedAt *time.Time `yaml:"finished_at,omitempty"`
	FilesMoved int64      `yaml:"files_moved"`
	DirsMoved  int64      `yaml:"dirs_moved"`
	TotalSize  int64      `yaml:"total_size"`
}

func (Run) TableName() string {
	return "runs"
}

// Entry 单次迁移记录
type Entry struct {
	ID       int64     `gorm:"primaryKey" yaml:"-"`
	RunID    string    `gorm:"not null;index" yaml:"run_id"`
	Kind     string    `gorm:"not null" yaml:"kind"`
	SrcPath  string    `gorm:"not null" yaml:"src"`
	DestPath string    `gorm:"not null" yaml:"dest"`
	RelPath  string    `gorm:"not null" yaml:"rel_path"`
	PathHash int64     `gorm:"not null;index" yaml:"-"`
	Size     int64     `gorm:"not null" yaml:"size"`
	MimeType string    `gorm:"not null" yaml:"mime_type,omitempty"`
	Category string    `gorm:"not null;index" yaml:"category,omitempty"`
	MovedAt  time.Time `gorm:"not null" yaml:"moved_at"`
}

func (Entry) TableName() string {
	return "relocations"
}

type Journal struct {
	db         *gorm.DB
	classifier *classifier.Classifier
}

func Open(dbPath string) (*Journal, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("打开迁移日志数据库，路径: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	dsn := expandedPath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return nil, err
	}

	// 多个工作线程并发写入，串行化到单一连接
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&Run{}, &Entry{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		sqlDB.Close()
		return nil, err
	}

	return &Journal{db: db, classifier: classifier.New(afero.NewOsFs())}, nil
}

func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Exists 判断迁移日志数据库文件是否存在
func Exists(dbPath string) (bool, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// PathHash 相对路径的 64 位哈希，用于索引查找
func PathHash(relPath string) int64 {
	return int64(xxhash.Sum64String(filepath.ToSlash(relPath)))
}

// BeginRun 创建一次执行记录并返回其 ID
func (j *Journal) BeginRun(mode internal.OperationMode, from, to string) (string, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Mode:      string(mode),
		FromRoot:  from,
		ToRoot:    to,
		StartedAt: time.Now(),
	}
	if err := j.db.Create(run).Error; err != nil {
		return "", fmt.Errorf("创建执行记录失败: %w", err)
	}
	return run.ID, nil
}

// FinishRun 写入执行结束时间和统计
func (j *Journal) FinishRun(runID string, stats internal.StatsSnapshot) error {
	now := time.Now()
	err := j.db.Model(&Run{}).Where("id = ?", runID).Updates(map[string]any{
		"finished_at": &now,
		"files_moved": int64(stats.FilesMoved),
		"dirs_moved":  int64(stats.DirsMoved),
		"total_size":  int64(stats.TotalSize),
	}).Error
	if err != nil {
		return fmt.Errorf("更新执行记录失败: %w", err)
	}
	return nil
}

// Record 写入一条迁移记录
func (j *Journal) Record(runID string, r internal.Relocation) error {
	var kind classifier.Result
	if r.Kind == internal.KindFile {
		kind = j.classifier.Detect(r.Dest)
	}

	movedAt := r.MovedAt
	if movedAt.IsZero() {
		movedAt = time.Now()
	}

	entry := &Entry{
		RunID:    runID,
		Kind:     string(r.Kind),
		SrcPath:  r.Src,
		DestPath: r.Dest,
		RelPath:  r.RelPath,
		PathHash: PathHash(r.RelPath),
		Size:     int64(r.Size),
		MimeType: kind.MIME,
		Category: kind.Category,
		MovedAt:  movedAt,
	}
	if err := j.db.Create(entry).Error; err != nil {
		return fmt.Errorf("写入迁移记录失败: %w", err)
	}

	logger.Get().Trace().Msgf("写入迁移记录: %s -> %s", r.Src, r.Dest)
	return nil
}

// Runs 按开始时间倒序返回最近的执行记录
func (j *Journal) Runs(limit int) ([]Run, error) {
	var runs []Run
	q := j.db.Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("查询执行记录失败: %w", err)
	}
	return runs, nil
}

// Entries 返回某次执行的全部迁移记录
func (j *Journal) Entries(runID string) ([]Entry, error) {
	var entries []Entry
	if err := j.db.Where("run_id = ?", runID).Order("id").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("查询迁移记录失败: %w", err)
	}
	return entries, nil
}

// FindByRelPath 按相对路径查找历史迁移记录
func (j *Journal) FindByRelPath(relPath string) ([]Entry, error) {
	var entries []Entry
	err := j.db.
		Where("path_hash = ? AND rel_path = ?", PathHash(relPath), relPath).
		Order("moved_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询迁移记录失败: %w", err)
	}
	return entries, nil
}

func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return err
	}
	return sqlDB.Close()
}

// RunRecorder 绑定到某次执行的记录器
type RunRecorder struct {
	journal *Journal
	runID   string
}

func (j *Journal) Recorder(runID string) *RunRecorder {
	return &RunRecorder{journal: j, runID: runID}
}

func (r *RunRecorder) RunID() string {
	return r.runID
}

func (r *RunRecorder) Record(rel internal.Relocation) error {
	return r.journal.Record(r.runID, rel)
}
