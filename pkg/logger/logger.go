package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger 全局日志实例
	Logger *zap.Logger

	// Health 健康检查专用日志，单独写入 HealthFilePath
	Health *zap.Logger
)

const (
	defaultMaxSize    = 10 // MB
	defaultMaxBackups = 5
)

// Config 日志配置
type Config struct {
	Level          string // debug, info, warn, error, fatal
	Output         string // stdout, file, both
	FilePath       string // 文件路径
	HealthFilePath string // 健康检查日志路径，为空时与主日志一致
	MaxSize        int    // 单个文件大小上限（MB）
	MaxBackups     int    // 保留的历史文件数
}

// Init 初始化日志
func Init(cfg *Config) error {
	level := parseLevel(cfg.Level)
	encoder := zapcore.NewConsoleEncoder(newEncoderConfig())

	// 主日志
	writeSyncer, err := newWriteSyncer(cfg, cfg.FilePath, cfg.Output)
	if err != nil {
		return err
	}
	core := zapcore.NewCore(encoder, writeSyncer, level)
	Logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	// 健康检查日志只写文件，未配置文件时退回主日志输出
	healthSyncer := writeSyncer
	if cfg.HealthFilePath != "" && cfg.Output != "stdout" {
		healthSyncer, err = newWriteSyncer(cfg, cfg.HealthFilePath, "file")
		if err != nil {
			return err
		}
	}
	Health = zap.New(zapcore.NewCore(encoder, healthSyncer, level), zap.AddCaller()).Named("health_check")

	return nil
}

// parseLevel 解析日志级别，未知值按 info 处理
func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// newWriteSyncer 根据输出方式创建 WriteSyncer，文件输出按大小滚动
func newWriteSyncer(cfg *Config, path, output string) (zapcore.WriteSyncer, error) {
	stdout := zapcore.AddSync(os.Stdout)
	if output != "file" && output != "both" {
		return stdout, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}

	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	})

	if output == "both" {
		return zapcore.NewMultiWriteSyncer(file, stdout), nil
	}
	return file, nil
}

func newEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// customLevelEncoder 自定义日志级别编码器（带颜色）
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	const (
		colorReset  = "\033[0m"
		colorRed    = "\033[31m"
		colorGreen  = "\033[32m"
		colorYellow = "\033[33m"
		colorBlue   = "\033[34m"
	)

	var coloredLevel string
	switch level {
	case zapcore.DebugLevel:
		coloredLevel = colorBlue + "[DEBUG]" + colorReset
	case zapcore.InfoLevel:
		coloredLevel = colorGreen + "[INFO] " + colorReset
	case zapcore.WarnLevel:
		coloredLevel = colorYellow + "[WARN] " + colorReset
	case zapcore.ErrorLevel:
		coloredLevel = colorRed + "[ERROR]" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		coloredLevel = colorRed + "[PANIC]" + colorReset
	case zapcore.FatalLevel:
		coloredLevel = colorRed + "[FATAL]" + colorReset
	default:
		coloredLevel = "[UNKNOWN]"
	}

	enc.AppendString(coloredLevel)
}

// Info 记录 Info 级别日志
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Warn 记录 Warn 级别日志
func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

// Error 记录 Error 级别日志
func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// Debug 记录 Debug 级别日志
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Fatal 记录 Fatal 级别日志（会退出程序）
func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Sync 同步日志（程序退出前调用）
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	if Health != nil {
		_ = Health.Sync()
	}
}
