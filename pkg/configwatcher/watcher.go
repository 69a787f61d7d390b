package configwatcher

import (
	"path/filepath"
	"time"

	"english_edu_backend/internal/config"
	"english_edu_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader 收到重新解析成功的配置后决定热替换哪些字段
type Reloader func(updated *config.Config)

// WatchConfig 监听配置文件变更并在防抖后重载。
// 监听的是目录而不是文件本身：编辑器和 k8s configmap 更新
// 走的都是写临时文件再改名，盯着旧 inode 会收不到事件
func WatchConfig(configPath string, reloader Reloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	if err := watcher.Add(dir); err != nil {
		return err
	}
	logger.Log.Info("开始监听配置文件", zap.String("path", absPath))

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce.Reset(time.Second)
			}

		case <-debounce.C:
			updated, err := config.LoadConfig(dir)
			if err != nil {
				logger.Log.Error("配置重载失败，沿用当前配置", zap.Error(err))
				continue
			}
			reloader(updated)
			logger.Log.Info("配置文件已重载", zap.String("path", absPath))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Warn("配置监听出错", zap.Error(err))
		}
	}
}
