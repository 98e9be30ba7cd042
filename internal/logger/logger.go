// Package logger holds the process wide zap logger.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop().Sugar()
)

// Logger returns the process logger. It discards everything until Init is called.
func Logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Init replaces the process logger with a console logger writing to w at the given level
// (debug, info, warn, error). A nil w logs to stderr.
func Init(level string, w io.Writer) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)

	mu.Lock()
	global = zap.New(core).Sugar()
	mu.Unlock()
	return nil
}

// Sync flushes the process logger.
func Sync() {
	_ = Logger().Sync()
}
