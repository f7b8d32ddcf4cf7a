package app

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/logger"
)

// PrepareRoots 按操作模式检查来源根目录并在需要时创建目标根目录
// 预览模式下只输出将要创建的目录
func PrepareRoots(fs afero.Fs, source, temporary string, mode internal.OperationMode, dryRun bool) error {
	from, to := source, temporary
	fromLabel, toLabel := "源目录", "临时目录"
	if mode == internal.ModeRestore {
		from, to = temporary, source
		fromLabel, toLabel = "临时目录", "源目录"
	}

	isDir, err := afero.IsDir(fs, from)
	if err != nil || !isDir {
		return fmt.Errorf("%s '%s' 不存在或不是目录", fromLabel, from)
	}

	exists, err := afero.Exists(fs, to)
	if err != nil {
		return fmt.Errorf("检查%s失败: %w", toLabel, err)
	}

	if !exists {
		if dryRun {
			logger.Get().Info().Msgf("[DRY RUN] 将创建%s: %s", toLabel, to)
			return nil
		}
		if err := fs.MkdirAll(to, 0755); err != nil {
			return fmt.Errorf("创建%s失败: %w", toLabel, err)
		}
		logger.Get().Info().Msgf("已创建%s: %s", toLabel, to)
		return nil
	}

	isDir, err = afero.IsDir(fs, to)
	if err != nil || !isDir {
		return fmt.Errorf("%s '%s' 不是目录", toLabel, to)
	}
	return nil
}
