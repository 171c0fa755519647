// Package journal is the application's activity log: a zap logger writing to
// file and console, plus a bounded in-memory ring of recent entries that the
// UI log pane polls.
package journal

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultCapacity = 200

type Entry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type Journal struct {
	mu      sync.Mutex
	logger  *zap.Logger
	entries []Entry
	max     int
}

// New builds a journal logging to logPath and stderr. The caller owns the
// lifecycle: construct once at startup, Close at shutdown.
func New(logPath string) (*Journal, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr", logPath}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Journal{logger: logger, max: defaultCapacity}, nil
}

// NewNop returns a journal that keeps the ring but logs nowhere. For tests.
func NewNop() *Journal {
	return &Journal{logger: zap.NewNop(), max: defaultCapacity}
}

func (j *Journal) Infof(format string, args ...interface{}) {
	j.log(zapcore.InfoLevel, fmt.Sprintf(format, args...))
}

func (j *Journal) Warnf(format string, args ...interface{}) {
	j.log(zapcore.WarnLevel, fmt.Sprintf(format, args...))
}

func (j *Journal) Errorf(format string, args ...interface{}) {
	j.log(zapcore.ErrorLevel, fmt.Sprintf(format, args...))
}

func (j *Journal) log(level zapcore.Level, msg string) {
	switch level {
	case zapcore.WarnLevel:
		j.logger.Warn(msg)
	case zapcore.ErrorLevel:
		j.logger.Error(msg)
	default:
		j.logger.Info(msg)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, Entry{
		Time:    time.Now().Format("2006-01-02 15:04:05"),
		Level:   level.String(),
		Message: msg,
	})
	if len(j.entries) > j.max {
		j.entries = j.entries[len(j.entries)-j.max:]
	}
}

// Recent returns a copy of the ring, oldest first.
func (j *Journal) Recent() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Close flushes buffered log output.
func (j *Journal) Close() error {
	return j.logger.Sync()
}
