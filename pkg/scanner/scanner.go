package scanner

import (
	"os"

	"github.com/spf13/afero"

	"github.com/moyu-x/timovate/pkg/logger"
)

type FileWalker struct {
	Fs afero.Fs
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	return &FileWalker{Fs: fs}
}

// Walk 遍历 root 下的所有普通文件，不跟随符号链接，出错的路径被跳过
func (w *FileWalker) Walk(root string, callback func(path string, info os.FileInfo) error) error {
	return afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Debug().Err(err).Str("path", path).Msg("访问路径出错")
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return callback(path, info)
	})
}

// DirSize 统计目录下所有普通文件的总大小（不含符号链接）
func (w *FileWalker) DirSize(dir string) (uint64, error) {
	var total uint64
	err := w.Walk(dir, func(path string, info os.FileInfo) error {
		total += uint64(info.Size())
		return nil
	})
	return total, err
}

func (w *FileWalker) CountFiles(dirs []string) (int, error) {
	logger.Get().Debug().Msgf("开始统计文件数量，共 %d 个目录", len(dirs))

	count := 0
	for _, dir := range dirs {
		err := w.Walk(dir, func(path string, info os.FileInfo) error {
			count++
			return nil
		})
		if err != nil {
			logger.Get().Error().Err(err).Msgf("扫描目录失败: %s", dir)
			return 0, err
		}
	}

	logger.Get().Debug().Msgf("文件统计完成，共找到 %d 个文件", count)
	return count, nil
}
