package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
var logger = newLogger()

func newLogger() *zap.SugaredLogger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	config.ConsoleSeparator = "  "

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(os.Stderr), level)

	return zap.New(core).Sugar()
}

// SetDebug enables or disables debug level logging.
func SetDebug(enabled bool) {
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

// SetLogger replaces the default stderr logger, e.g. with zaptest.NewLogger in tests.
func SetLogger(l *zap.Logger) {
	logger = l.Sugar()
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Fatalf logs the message and exits.
func Fatalf(format string, args ...any) {
	logger.Errorf(format, args...)
	logger.Sync()
	os.Exit(1)
}

// With returns a logger tagged with a component name, e.g. a job.
func With(component string) *zap.SugaredLogger {
	return logger.With("component", component)
}

func Sync() {
	_ = logger.Sync()
}
