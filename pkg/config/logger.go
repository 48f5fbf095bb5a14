package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 5
	logFileMaxBackups = 5
)

// NewLogger creates a zap logger writing to the console and, when logDir is
// non-empty, to a per-run size-rotated log file (5MB cap, 5 backups).
// The logger is constructed once and passed down; nothing installs it
// globally.
func NewLogger(level string, logDir string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}

	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(os.Stderr), lvl),
	}

	if logDir != "" {
		err = os.MkdirAll(logDir, 0o755)
		if err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}

		name := fmt.Sprintf("agent_%s.log", time.Now().Format("20060102_150405"))
		sink := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, name),
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), lvl))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
