package logger

import (
	"fmt"

	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger пишет те же события, что и ConsoleLogger, но в JSON через zap
type ZapLogger struct {
	// base хранит поля без модуля, чтобы WithModule заменял модуль, а не дублировал
	base   *zap.Logger
	logger *zap.Logger
}

func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{base: logger, logger: logger}
}

func NewProductionZapLogger(level out.LogLevel) (*ZapLogger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger.zap.build_failed: %w", err)
	}

	return NewZapLogger(logger), nil
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.logger.Debug(event, zapFields(fields)...)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.logger.Info(event, zapFields(fields)...)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.logger.Warn(event, zapFields(fields)...)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.logger.Error(event, zapFields(fields)...)
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return &ZapLogger{
		base:   l.base.With(zapFields(fields)...),
		logger: l.logger.With(zapFields(fields)...),
	}
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{
		base:   l.base,
		logger: l.base.With(zap.String("module", module)),
	}
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func zapFields(fields out.LogFields) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

func zapLevel(level out.LogLevel) zapcore.Level {
	switch level {
	case out.LogLevelDebug:
		return zapcore.DebugLevel
	case out.LogLevelWarn:
		return zapcore.WarnLevel
	case out.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
