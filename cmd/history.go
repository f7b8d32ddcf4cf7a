package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/timovate/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看迁移日志",
	Long: `列出最近的执行记录。
使用 --run 查看某次执行迁移的全部文件和目录，使用 --path 按相对路径查找历史迁移。`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Journal.Path
	}
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")
	relPath, _ := cmd.Flags().GetString("path")
	format, _ := cmd.Flags().GetString("format")

	return app.ShowHistory(cmd.OutOrStdout(), &app.HistoryOptions{
		JournalPath: dbPath,
		Limit:       limit,
		RunID:       runID,
		RelPath:     relPath,
		Format:      format,
	})
}

func init() {
	historyCmd.Flags().String("db", "", "迁移日志数据库路径")
	historyCmd.Flags().IntP("limit", "n", 20, "显示的执行记录数量")
	historyCmd.Flags().String("run", "", "执行 ID")
	historyCmd.Flags().String("path", "", "相对路径")
	historyCmd.Flags().StringP("format", "f", "table", "输出格式: table 或 yaml")

	rootCmd.AddCommand(historyCmd)
}
