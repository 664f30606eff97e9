package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// JSONOutput records which encoder Initialize picked
	JSONOutput bool
)

func init() {
	// No-op until Initialize so packages can log from tests and init code
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. Console output goes to stderr so
// commands that print JSON on stdout stay parseable.
func Initialize(jsonOutput bool, level string) error {
	JSONOutput = jsonOutput
	lvl := ParseLevel(level)

	var zapLogger *zap.Logger
	var err error

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err = config.Build()
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapLogger = zap.New(
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(encoderConfig),
				zapcore.AddSync(os.Stderr),
				lvl,
			),
		)
	}

	if err != nil {
		return err
	}

	Logger = zapLogger.Sugar()
	return nil
}

// ParseLevel maps a config string to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	}
	return zap.InfoLevel
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func Debugw(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}

func Infow(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

func Warnw(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

func Errorw(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}
