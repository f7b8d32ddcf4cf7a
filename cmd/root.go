package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/moyu-x/timovate/app"
	"github.com/moyu-x/timovate/config"
	"github.com/moyu-x/timovate/internal"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timovate",
	Short: "按修改时间在源目录与临时目录之间迁移文件",
	Long: `Timovate 按修改时间把文件和目录在源目录与临时目录之间迁移。

主要功能:
- move 模式：把满足天数条件的文件移动到临时目录，保持相对路径
- restore 模式：把临时目录中的内容全部还原到源目录
- 整个目录满足条件时作为一个整体重命名
- 正则排除规则、预览模式与迁移统计
- 迁移日志记录在 SQLite 数据库中，可用 history 子命令查看

天数格式: "+N" 早于 N 天，"-N" 晚于 N 天，"N" 恰好 N 天`,
	Args:         cobra.NoArgs,
	RunE:         runMove,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

func runMove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	opts, err := moveOptions(cmd, cfg)
	if err != nil {
		return err
	}

	stats, err := app.RunMove(opts)
	if stats != nil {
		summary := color.New(color.FgGreen, color.Bold)
		if err != nil {
			summary = color.New(color.FgYellow, color.Bold)
		}
		summary.Fprintln(cmd.OutOrStdout(), stats.String())
	}
	return err
}

// moveOptions 合并配置与命令行参数，显式设置的参数优先
func moveOptions(cmd *cobra.Command, cfg *config.Config) (*app.MoveOptions, error) {
	flags := cmd.Flags()

	source, _ := flags.GetString("source")
	temporary, _ := flags.GetString("temporary")
	dryRun, _ := flags.GetBool("dry-run")
	verbose, _ := flags.GetBool("verbose")
	modeStr, _ := flags.GetString("mode")
	noJournal, _ := flags.GetBool("no-journal")
	useTUI, _ := flags.GetBool("tui")
	lockDir, _ := flags.GetString("lock-dir")

	mode, err := internal.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	days := cfg.Move.Days
	if flags.Changed("days") {
		days, _ = flags.GetString("days")
	}

	exclude := cfg.Move.Exclude
	if flags.Changed("exclude") {
		exclude, _ = flags.GetStringArray("exclude")
	}

	workers := cfg.Performance.Workers
	if flags.Changed("workers") {
		workers, _ = flags.GetInt("workers")
	}

	return &app.MoveOptions{
		Source:      source,
		Temporary:   temporary,
		Days:        days,
		DryRun:      dryRun,
		Verbose:     verbose,
		Mode:        mode,
		Exclude:     exclude,
		Workers:     workers,
		Journal:     cfg.Journal.Enabled && !noJournal,
		JournalPath: cfg.Journal.Path,
		LockDir:     lockDir,
		LogLevel:    cfg.Logging.Level,
		LogFile:     cfg.Logging.File,
		TUI:         useTUI,
	}, nil
}

func addMoveFlags(c *cobra.Command) {
	c.Flags().StringP("source", "s", "", "源目录")
	c.Flags().StringP("temporary", "t", "", "临时目录")
	c.Flags().String("days", internal.DefaultDays, `天数条件："+N" 早于、"-N" 晚于、"N" 恰好 N 天`)
	c.Flags().Bool("dry-run", false, "预览模式，不实际移动文件")
	c.Flags().BoolP("verbose", "v", false, "输出每个节点的处理详情")
	c.Flags().StringP("mode", "m", string(internal.ModeMove), "操作模式: move 或 restore")
	c.Flags().StringArrayP("exclude", "e", nil, "排除路径的正则表达式，可重复指定")
	c.Flags().Int("workers", 0, "并发工作线程数（默认 CPU 核数）")
	c.Flags().Bool("no-journal", false, "不写入迁移日志")
	c.Flags().Bool("tui", false, "显示终端进度界面")
	c.Flags().String("lock-dir", "", "运行锁目录（默认系统临时目录）")

	c.MarkFlagRequired("source")
	c.MarkFlagRequired("temporary")
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "配置文件路径（默认 $HOME/.timovate/config.yaml）")
	addMoveFlags(rootCmd)
}
