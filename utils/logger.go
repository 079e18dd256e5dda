package utils

import (
	"log"
	"sync"

	"tutorly/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. Use GetLogger rather than reading it directly.
var Logger *zap.Logger

var loggerOnce sync.Once

// NewLogger builds the process logger. Production emits JSON at level (info by
// default); development always logs coloured console output at debug.
// Output goes to stderr so tutorctl's stdout stays machine-readable.
func NewLogger(production bool, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.OutputPaths = []string{"stderr"}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		if production {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "tutorly")), nil
}

// GetLogger lazily builds the logger from AppConfig and installs it as zap's global.
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		l, err := NewLogger(config.IsProduction(), config.AppConfig.LogLevel)
		if err != nil {
			log.Printf("invalid LOG_LEVEL %q, falling back to defaults: %v", config.AppConfig.LogLevel, err)
			l, err = NewLogger(config.IsProduction(), "")
		}
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		Logger = l
		zap.ReplaceGlobals(Logger)
	})
	return Logger
}
