package logger

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPreviewWidth 日志中文本预览的默认显示宽度
const DefaultPreviewWidth = 40

// NewLogger 创建一个新的日志记录器
func NewLogger(debug bool) *zap.Logger {
	config := zap.NewProductionConfig()

	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		panic("初始化日志系统失败: " + err.Error())
	}

	return logger
}

// OrNop 在 logger 为 nil 时返回一个空日志记录器
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Preview 按显示宽度截断文本，中文字符按双宽度计算
func Preview(text string, width int) string {
	if width <= 0 {
		width = DefaultPreviewWidth
	}
	text = strings.Join(strings.Fields(text), " ")
	return runewidth.Truncate(text, width, "...")
}

// PreviewField 生成带文本预览的日志字段
func PreviewField(text string) zap.Field {
	return zap.String("text", Preview(text, DefaultPreviewWidth))
}
