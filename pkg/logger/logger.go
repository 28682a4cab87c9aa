package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger used across the feedback service.
// - package-level Debugf/Infof/Warnf/Errorf/Fatalf for terse call sites
// - Infow/Warnw/Errorw and L() for structured key/value logging
// - backed by a zap SugaredLogger; Init(level) may be called again to change level

var (
	mu     sync.RWMutex
	atom   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger(os.Getenv("SERVER_ENVIRONMENT"))
)

func newLogger(env string) *zap.SugaredLogger {
	var cfg zap.Config
	if strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = atom
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values fall back to info.
func Init(l string) {
	var lvl zapcore.Level
	s := strings.ToLower(strings.TrimSpace(l))
	if s == "warning" {
		s = "warn"
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil || s == "" {
		lvl = zapcore.InfoLevel
	}
	atom.SetLevel(lvl)
}

// SetLogger replaces the underlying logger. Used by tests and by callers that
// build their own zap core.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// L returns the current SugaredLogger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Level exposes the atomic level so custom cores can share it.
func Level() zap.AtomicLevel { return atom }

func Debugf(format string, v ...interface{}) { L().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { L().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { L().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { L().Errorf(format, v...) }

func Fatalf(format string, v ...interface{}) {
	L().Errorf(format, v...)
	_ = Sync()
	os.Exit(1)
}

func Infow(msg string, kv ...interface{})  { L().Infow(msg, kv...) }
func Warnw(msg string, kv ...interface{})  { L().Warnw(msg, kv...) }
func Errorw(msg string, kv ...interface{}) { L().Errorw(msg, kv...) }

// Sync flushes buffered entries. Errors from syncing stdout on some platforms are ignored.
func Sync() error {
	err := L().Sync()
	if err != nil && strings.Contains(err.Error(), "invalid argument") {
		return nil
	}
	return err
}

// LevelString returns the current level as text.
func LevelString() string {
	return atom.Level().String()
}
