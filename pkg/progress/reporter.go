package progress

import (
	"sync"
	"time"

	"github.com/moyu-x/timovate/pkg/logger"
	"github.com/moyu-x/timovate/pkg/mover"
)

// Source 返回当前进度，*mover.Mover 的 Progress 方法满足该签名
type Source func() mover.Progress

// Reporter 定期把执行进度写入日志
type Reporter struct {
	source   Source
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
	reported int
	mu       sync.Mutex
}

func NewReporter(source Source, interval time.Duration) *Reporter {
	return &Reporter{
		source:   source,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start 在后台开始定期输出，调用方必须调用 Stop
func (r *Reporter) Start() {
	go r.loop()
}

func (r *Reporter) loop() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			p := r.source()
			// 没有新进展时不重复输出
			if p.Visited == last {
				continue
			}
			last = p.Visited
			r.report(p)
		}
	}
}

func (r *Reporter) report(p mover.Progress) {
	logger.Get().Info().Msgf("处理进度: 第 %d 层，已访问 %d 个节点，已迁移 %d 个文件和 %d 个目录 (%s)",
		p.Depth, p.Visited, p.Stats.FilesMoved, p.Stats.DirsMoved, mover.FormatBytes(p.Stats.TotalSize))

	r.mu.Lock()
	r.reported++
	r.mu.Unlock()
}

// Reported 已输出的进度日志条数
func (r *Reporter) Reported() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reported
}

// Stop 停止输出并等待后台 goroutine 退出，可重复调用
func (r *Reporter) Stop() {
	r.once.Do(func() {
		close(r.stop)
	})
	<-r.done
}
