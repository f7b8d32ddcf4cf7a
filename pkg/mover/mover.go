package mover

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/exclusion"
	"github.com/moyu-x/timovate/pkg/logger"
	"github.com/moyu-x/timovate/pkg/pool"
	"github.com/moyu-x/timovate/pkg/scanner"
	"github.com/moyu-x/timovate/pkg/timecmp"
)

// Recorder 接收每一次成功的实际迁移（预览模式下不会调用）
type Recorder interface {
	Record(r internal.Relocation) error
}

type Options struct {
	Source    string
	Temporary string
	Days      string
	DryRun    bool
	Verbose   bool
	Mode      internal.OperationMode
	Exclude   []string
	Workers   int
	Recorder  Recorder
}

// Progress 执行过程中的进度快照
type Progress struct {
	Depth   int
	Visited uint64
	Stats   internal.StatsSnapshot
}

type Mover struct {
	fs        afero.Fs
	walker    *scanner.FileWalker
	source    string
	temporary string
	cmp       timecmp.Comparison
	exclude   *exclusion.Set
	dryRun    bool
	verbose   bool
	mode      internal.OperationMode
	workers   int
	recorder  Recorder
	now       func() time.Time

	stats   Stats
	depth   atomic.Int64
	visited atomic.Uint64
	stopped atomic.Bool
}

// New 校验参数并创建迁移器，任何参数错误都在修改文件系统之前返回
func New(fs afero.Fs, opts Options) (*Mover, error) {
	same, err := sameRoot(opts.Source, opts.Temporary)
	if err != nil {
		return nil, err
	}
	if same {
		return nil, fmt.Errorf("%w: %s", ErrSameRoot, opts.Source)
	}

	cmp, err := timecmp.Parse(opts.Days)
	if err != nil {
		return nil, err
	}

	exclude, err := exclusion.Compile(opts.Exclude)
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = internal.ModeMove
	}
	if _, err := internal.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	if opts.DryRun {
		fs = afero.NewReadOnlyFs(fs)
	}

	return &Mover{
		fs:        fs,
		walker:    scanner.NewFileWalker(fs),
		source:    opts.Source,
		temporary: opts.Temporary,
		cmp:       cmp,
		exclude:   exclude,
		dryRun:    opts.DryRun,
		verbose:   opts.Verbose,
		mode:      mode,
		workers:   opts.Workers,
		recorder:  opts.Recorder,
		now:       time.Now,
	}, nil
}

func sameRoot(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("解析路径失败 %s: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("解析路径失败 %s: %w", b, err)
	}
	return absA == absB, nil
}

// Roots 按操作模式返回 (来源, 目标)
func (m *Mover) Roots() (from, to string) {
	if m.mode == internal.ModeRestore {
		return m.temporary, m.source
	}
	return m.source, m.temporary
}

// SetRecorder 设置迁移记录器，必须在 Execute 之前调用
func (m *Mover) SetRecorder(r Recorder) {
	m.recorder = r
}

func (m *Mover) Mode() internal.OperationMode   { return m.mode }
func (m *Mover) DryRun() bool                   { return m.dryRun }
func (m *Mover) Comparison() timecmp.Comparison { return m.cmp }

// Stats 返回统计信息，执行结束后读取
func (m *Mover) Stats() *Stats {
	return &m.stats
}

func (m *Mover) Progress() Progress {
	return Progress{
		Depth:   int(m.depth.Load()),
		Visited: m.visited.Load(),
		Stats:   m.stats.Snapshot(),
	}
}

// Execute 按操作模式执行一次完整遍历
// 返回第一个迁移错误；之前已完成的迁移不会回滚
func (m *Mover) Execute() error {
	from, to := m.Roots()

	p, err := pool.NewLevelPool(m.workers)
	if err != nil {
		return fmt.Errorf("创建工作池失败: %w", err)
	}
	defer p.Release()

	log := logger.Get().Info().
		Str("mode", string(m.mode)).
		Str("from", from).
		Str("to", to).
		Bool("dry_run", m.dryRun)
	if m.mode == internal.ModeMove {
		log = log.Str("days", m.cmp.String())
	}
	log.Msg("开始处理")

	if err := m.traverse(p, from, to); err != nil {
		return err
	}

	logger.Get().Info().
		Uint64("files", m.stats.FilesMoved()).
		Uint64("dirs", m.stats.DirsMoved()).
		Uint64("bytes", m.stats.TotalSize()).
		Msg("处理完成")
	return nil
}

// Stop 请求在当前层级处理完成后停止，可在任意 goroutine 调用
func (m *Mover) Stop() {
	m.stopped.Store(true)
}

// detail 在 verbose 模式下以 info 级别输出，否则为 debug
func (m *Mover) detail() *zerolog.Event {
	if m.verbose {
		return logger.Get().Info()
	}
	return logger.Get().Debug()
}

func (m *Mover) isExcluded(path string) bool {
	return m.exclude.IsExcluded(path)
}

// fileMatches restore 模式忽略天数条件
func (m *Mover) fileMatches(info os.FileInfo) bool {
	if m.mode == internal.ModeRestore {
		return true
	}
	return m.cmp.Matches(info.ModTime(), m.now())
}

// lstat 不跟随符号链接读取元数据
func (m *Mover) lstat(path string) (os.FileInfo, error) {
	if l, ok := m.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return m.fs.Stat(path)
}
