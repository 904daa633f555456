package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config string to a zap level. Unknown values mean info.
func ParseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds the process logger. format "json" selects the production
// encoder, anything else the development console encoder.
func NewLogger(levelStr, format string) *zap.Logger {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(levelStr))
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// RunLogger writes one build run to stdout and to its own file under
// {dir}/{kind}/{kind}_{timestamp}.log.
type RunLogger struct {
	file   *os.File
	path   string
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

func NewRunLogger(dir, kind, levelStr string) (*RunLogger, error) {
	sanitizedKind := strings.ReplaceAll(strings.ToLower(kind), " ", "_")
	if dir == "" {
		dir = "logs"
	}

	kindDir := filepath.Join(dir, sanitizedKind)
	if err := os.MkdirAll(kindDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(kindDir, fmt.Sprintf("%s_%s.log", sanitizedKind, timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	level := zap.NewAtomicLevelAt(ParseLevel(levelStr))
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level),
	)
	logger := zap.New(core).With(zap.String("run", sanitizedKind))

	return &RunLogger{
		file:   file,
		path:   logPath,
		logger: logger,
		sugar:  logger.Sugar(),
	}, nil
}

// Logger returns the structured logger backing the run.
func (rl *RunLogger) Logger() *zap.Logger {
	return rl.logger
}

// Path is the log file location.
func (rl *RunLogger) Path() string {
	return rl.path
}

func (rl *RunLogger) LogInfo(format string, v ...interface{}) {
	rl.sugar.Infof(format, v...)
}

func (rl *RunLogger) LogWarn(format string, v ...interface{}) {
	rl.sugar.Warnf(format, v...)
}

func (rl *RunLogger) LogError(format string, v ...interface{}) {
	rl.sugar.Errorf(format, v...)
}

func (rl *RunLogger) LogDebug(format string, v ...interface{}) {
	rl.sugar.Debugf(format, v...)
}

func (rl *RunLogger) Close() error {
	_ = rl.logger.Sync()
	return rl.file.Close()
}
