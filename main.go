package main

import (
	"os"

	_ "dfx-site/cmd"
	"dfx-site/cmd/root"
	"dfx-site/internal/config"
	"dfx-site/internal/logger"
)

func main() {
	// 服务器模式下日志同时输出到控制台
	isServerMode := len(os.Args) > 1 && os.Args[1] == "server"
	logger.InitLoggerWithMode(&config.Config.Log, isServerMode)

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
