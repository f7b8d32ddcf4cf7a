package mover

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moyu-x/timovate/internal"
)

func TestFormatBytes(t *testing.T) {
	tests := map[uint64]string{
		0:                   "0.00 B",
		1:                   "1.00 B",
		1023:                "1023.00 B",
		1024:                "1.00 KB",
		1536:                "1.50 KB",
		1024 * 1024:         "1.00 MB",
		5 * 1024 * 1024:     "5.00 MB",
		1 << 30:             "1.00 GB",
		1 << 40:             "1.00 TB",
		1 << 50:             "1024.00 TB",
		1024*1024*1024 - 1: "1024.00 MB",
	}

	for in, want := range tests {
		assert.Equal(t, want, FormatBytes(in), "FormatBytes(%d)", in)
	}
}

func TestStats_String(t *testing.T) {
	var s Stats
	s.addFile(512)
	s.addFile(512)
	s.addDir(512)

	assert.Equal(t, "已处理 2 个文件和 1 个目录，总大小: 1.50 KB", s.String())
	assert.Equal(t, internal.StatsSnapshot{FilesMoved: 2, DirsMoved: 1, TotalSize: 1536}, s.Snapshot())
}

func TestStats_Concurrent(t *testing.T) {
	var s Stats
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.addFile(1)
				s.addDir(2)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 5000, s.FilesMoved())
	assert.EqualValues(t, 5000, s.DirsMoved())
	assert.EqualValues(t, 15000, s.TotalSize())
}
