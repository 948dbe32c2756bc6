package logger

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerAdapter implements ports.LoggerPort on zap.
type LoggerAdapter struct {
	log *zap.Logger
}

// NewLoggerAdapter builds a JSON production logger for env "production" and a
// console development logger otherwise.
func NewLoggerAdapter(env string) *LoggerAdapter {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log = zap.NewNop()
	}
	return &LoggerAdapter{log: log}
}

// NewLoggerAdapterFrom wraps an existing zap logger.
func NewLoggerAdapterFrom(log *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{log: log}
}

func NewNop() *LoggerAdapter {
	return &LoggerAdapter{log: zap.NewNop()}
}

func (l *LoggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toZap(fields)...)
}

func (l *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toZap(fields)...)
}

func (l *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toZap(fields)...)
}

func (l *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, toZap(fields)...)
}

func (l *LoggerAdapter) Sync() error {
	return l.log.Sync()
}

// toZap converts the field map in key order so output is stable.
func toZap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
