package root

import (
	"dfx-site/internal/config"
	"dfx-site/internal/logger"

	"github.com/spf13/cobra"
)

var configPath string

var RootCmd = &cobra.Command{
	Use:   "dfx-site",
	Short: "Destroy FX 插件网站",
	Long:  `dfx-site提供Destroy FX插件网站: 软件下载、博物馆、新闻、宿主程序兼容性表格和文档索引`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return nil
		}
		if err := config.SetConfigFile(configPath); err != nil {
			return err
		}
		logger.InitLoggerWithMode(&config.Config.Log, cmd.Name() == "server")
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径(默认查找./config.yaml和~/.dfx-site/config.yaml)")
}
