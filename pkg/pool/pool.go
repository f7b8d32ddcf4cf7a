package pool

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/moyu-x/timovate/pkg/logger"
)

// LevelPool 按批次执行任务：一次提交整批、等待全部完成后再返回
type LevelPool struct {
	workers int
	pool    *ants.Pool
}

// NewLevelPool 创建工作池，workers <= 0 时使用 CPU 核数
func NewLevelPool(workers int) (*LevelPool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p, err := ants.NewPool(workers)
	if err != nil {
		logger.Get().Error().Err(err).Msg("创建 goroutine 池失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("创建工作池，工作线程数: %d", workers)
	return &LevelPool{workers: workers, pool: p}, nil
}

func (p *LevelPool) Workers() int {
	return p.workers
}

// Release 释放底层 goroutine 池
func (p *LevelPool) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Run 并行处理 items 中的每一项，返回与输入顺序一致的结果
func Run[T, R any](p *LevelPool, items []T, fn func(T) R) []R {
	results := make([]R, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = fn(item)
		}
		if err := p.pool.Submit(task); err != nil {
			// 池已关闭或过载时直接在当前 goroutine 执行
			logger.Get().Debug().Err(err).Msg("提交任务失败，改为同步执行")
			task()
		}
	}
	wg.Wait()

	return results
}
