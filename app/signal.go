package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/moyu-x/timovate/pkg/logger"
)

// stopper 可以被信号中止的任务
type stopper interface {
	Stop()
}

// handleSignals 收到 SIGINT/SIGTERM 时请求任务在当前层级完成后停止
// 返回的函数用于解除信号监听
func handleSignals(s stopper) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			logger.Get().Warn().Msgf("收到信号 %v，当前层级处理完成后停止...", sig)
			s.Stop()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
