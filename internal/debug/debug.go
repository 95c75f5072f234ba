// Package debug provides the file-backed logger used across beacon. Output
// never goes to the terminal because the TUI owns it.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLogger manages structured debug output written to a log file
type DebugLogger struct {
	logger  *zap.Logger
	logFile *os.File
	path    string
}

// NewDebugLogger creates a logger appending JSON lines to path at the given level.
// It falls back to a no-op logger when the file cannot be opened.
func NewDebugLogger(path string, level string) *DebugLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to create log directory: %v\n", err)
		return &DebugLogger{logger: zap.NewNop(), path: path}
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to open debug log: %v\n", err)
		return &DebugLogger{logger: zap.NewNop(), path: path}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(logFile),
		zap.NewAtomicLevelAt(lvl),
	)

	d := &DebugLogger{
		logger:  zap.New(core, zap.AddCaller()),
		logFile: logFile,
		path:    path,
	}
	d.logger.Info("debug session started")
	return d
}

// Logger returns the underlying zap logger
func (d *DebugLogger) Logger() *zap.Logger {
	return d.logger
}

// Path returns the log file location
func (d *DebugLogger) Path() string {
	return d.path
}

// Log adds a formatted debug message
func (d *DebugLogger) Log(format string, args ...interface{}) {
	d.logger.Sugar().Debugf(format, args...)
}

// Close flushes and closes the log file
func (d *DebugLogger) Close() {
	d.logger.Info("debug session ended")
	_ = d.logger.Sync()

	if d.logFile != nil {
		if err := d.logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to close debug log file: %v\n", err)
		}
	}
}

var (
	mu                sync.RWMutex
	globalDebugLogger *DebugLogger
)

// InitDebugLogger initializes the global debug logger
func InitDebugLogger(path string, level string) *DebugLogger {
	d := NewDebugLogger(path, level)
	mu.Lock()
	globalDebugLogger = d
	mu.Unlock()
	return d
}

// DebugLog logs a message to the global debug logger
func DebugLog(format string, args ...interface{}) {
	mu.RLock()
	d := globalDebugLogger
	mu.RUnlock()
	if d != nil {
		d.Log(format, args...)
	}
}

// Named returns a named child of the global logger, or a no-op logger
// before InitDebugLogger has run.
func Named(name string) *zap.Logger {
	mu.RLock()
	d := globalDebugLogger
	mu.RUnlock()
	if d == nil {
		return zap.NewNop()
	}
	return d.logger.Named(name)
}
