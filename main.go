// @title 英语学习平台后端 API
// @version 1.0
// @description 英语学习平台的后端服务：模块化课程、测验评分与学习进度聚合。

// @contact.name API支持
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"english_edu_backend/internal/app"
	"english_edu_backend/internal/config"
	"english_edu_backend/pkg/configwatcher"
	"english_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 监听配置文件变更，热更新可以安全替换的字段（JWT 密钥、存储凭证）
	go func() {
		err := configwatcher.WatchConfig("configs/config.yaml", func(updated *config.Config) {
			cfg.JWT = updated.JWT
			cfg.Storage = updated.Storage
		})
		if err != nil {
			logger.Log.Warn("配置监听未启动", zap.Error(err))
		}
	}()

	application.Run()
}
