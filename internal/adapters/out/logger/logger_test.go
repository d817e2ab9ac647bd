package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsoleLogger_WritesModuleAndFields(t *testing.T) {
	var buf bytes.Buffer
	base, err := NewConsoleLoggerWithWriter(&buf, "UTC", out.LogLevelDebug)
	require.NoError(t, err)

	base.WithModule("ClinicCalendarService").
		WithFields(out.LogFields{"requestId": "r-1"}).
		Info("calendar.appointment.added", out.LogFields{"doctor": "avery"})

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "[ClinicCalendarService]")
	assert.Contains(t, line, `"event": "calendar.appointment.added"`)
	assert.Contains(t, line, `"doctor": "avery"`)
	assert.Contains(t, line, `"requestId": "r-1"`)
}

func TestConsoleLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	base, err := NewConsoleLoggerWithWriter(&buf, "Not/AZone", out.LogLevelWarn)
	require.NoError(t, err)

	base.Debug("calendar.day.cache.miss", out.LogFields{})
	base.Info("calendar.appointment.added", out.LogFields{})
	assert.Empty(t, buf.String())

	base.Error("app.http.failed", out.LogFields{"error": "boom"})
	assert.Contains(t, buf.String(), "[unknown]")
	assert.Contains(t, buf.String(), "app.http.failed")
}

func TestConsoleLogger_WithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base, err := NewConsoleLoggerWithWriter(&buf, "UTC", out.LogLevelInfo)
	require.NoError(t, err)

	_ = base.WithFields(out.LogFields{"secret": "x"})
	base.Info("app.starting", out.LogFields{})

	assert.NotContains(t, buf.String(), "secret")
}

func TestZapLogger_ReplacesModule(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := NewZapLogger(zap.New(core))

	base.WithModule("Main").
		WithFields(out.LogFields{"env": "local"}).
		WithModule("HttpController").
		Warn("http.appointment.rejected", out.LogFields{"error": "unknown doctor: [house]"})

	entries := logs.All()
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "http.appointment.rejected", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "HttpController", fields["module"])
	assert.Equal(t, "local", fields["env"])
	assert.Equal(t, "unknown doctor: [house]", fields["error"])
}

func TestParseLogLevel(t *testing.T) {
	level, err := out.ParseLogLevel(" warn ")
	require.NoError(t, err)
	assert.Equal(t, out.LogLevelWarn, level)
	assert.Equal(t, zapcore.WarnLevel, zapLevel(level))

	assert.True(t, level.Enables(out.LogLevelError))
	assert.False(t, level.Enables(out.LogLevelInfo))

	_, err = out.ParseLogLevel("trace")
	assert.Error(t, err)
}
