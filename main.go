// @title Survey 后端 API
// @version 1.0
// @description 问卷与测验服务：REST 管理接口和 Telegram 机器人。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"survey_backend/internal/app"
	"survey_backend/internal/config"
	"survey_backend/pkg/configwatcher"
	"survey_backend/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const configDir = "configs"

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	noBot := flag.Bool("no-bot", false, "只启动 REST 服务，不启动 Telegram 机器人")
	flag.Parse()

	// .env 可选
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly
	cfg.DisableBot = *noBot

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		logger.Log.Info("数据库迁移完成，退出程序")
		application.Close(context.Background())
		return
	}

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, configDir, application.ApplyConfig); err != nil {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}()

	if err := application.Run(); err != nil {
		logger.Log.Fatal("Server stopped with error", zap.Error(err))
	}
}
