package logger

import (
	"os"

	"english_edu_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *zap.Logger

// InitLogger 文件走 JSON 滚动日志，控制台在 debug 模式下彩色输出。
// 学习平台的请求日志量不大，保留两周、单文件 50M 足够回溯
func InitLogger(cfg *config.Config) {
	debug := cfg.Server.Mode == "debug"

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	rotated := zapcore.AddSync(&lumberjack.Logger{
		Filename:   "logs/english_edu.log",
		MaxSize:    50,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig()), rotated, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(debug)), zapcore.AddSync(os.Stdout), level),
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func consoleEncoderConfig(debug bool) zapcore.EncoderConfig {
	ec := fileEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if debug {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return ec
}
