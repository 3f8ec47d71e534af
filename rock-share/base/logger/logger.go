package logger

import (
	"time"

	"go.uber.org/zap"
)

// InitLogger 初始化全局日志, 未调用时使用zap默认的空logger
func InitLogger(level, name, logPath string, maxAge, rotationTime time.Duration, rotationSize uint32, dsn string) error {
	_, err := initZap(name, level, logPath, maxAge, rotationTime, rotationSize, dsn)
	return err
}

func Debugf(template string, args ...interface{}) {
	zap.S().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	zap.S().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	zap.S().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	zap.S().Errorf(template, args...)
}

func Error(args ...interface{}) {
	zap.S().Error(args...)
}

// Sync 退出前刷新缓冲
func Sync() {
	_ = zap.L().Sync()
}
