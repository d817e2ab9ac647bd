package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

type ConsoleLogger struct {
	defaultFields out.LogFields
	module        string
	level         out.LogLevel
	location      *time.Location
	writer        io.Writer
	mu            *sync.Mutex
}

func NewConsoleLogger(timezone string, level out.LogLevel) (*ConsoleLogger, error) {
	return NewConsoleLoggerWithWriter(os.Stdout, timezone, level)
}

func NewConsoleLoggerWithWriter(w io.Writer, timezone string, level out.LogLevel) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return &ConsoleLogger{
		defaultFields: make(out.LogFields),
		module:        "unknown",
		level:         level,
		location:      loc,
		writer:        w,
		mu:            &sync.Mutex{},
	}, nil
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := l.clone()
	newLogger.defaultFields = make(out.LogFields, len(l.defaultFields)+len(fields))

	// Копируем существующие поля
	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}

	// Добавляем новые поля
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	newLogger := l.clone()
	newLogger.module = module
	return newLogger
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) clone() *ConsoleLogger {
	return &ConsoleLogger{
		defaultFields: l.defaultFields,
		module:        l.module,
		level:         l.level,
		location:      l.location,
		writer:        l.writer,
		mu:            l.mu,
	}
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	if !l.level.Enables(level) {
		return
	}

	// Объединяем поля
	mergedFields := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		mergedFields[k] = v
	}
	for k, v := range fields {
		mergedFields[k] = v
	}

	// Добавляем event в поля
	mergedFields["event"] = event

	// Используем таймзону для форматирования времени
	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")

	var levelColor string
	switch level {
	case out.LogLevelDebug:
		levelColor = colorGray
	case out.LogLevelInfo:
		levelColor = colorGreen
	case out.LogLevelWarn:
		levelColor = colorYellow
	case out.LogLevelError:
		levelColor = colorRed
	}

	// Форматируем поля
	fieldsBytes, err := json.MarshalIndent(mergedFields, "", "  ")
	if err != nil {
		fieldsBytes = []byte(fmt.Sprintf("{\"event\": %q, \"marshalError\": %q}", event, err.Error()))
	}

	// Формируем и выводим лог
	logLine := fmt.Sprintf("%s[%s]%s %s[%s]%s %s[%s]%s\n%s",
		colorGray, timestamp, colorReset,
		levelColor, level, colorReset,
		colorCyan, l.module, colorReset,
		string(fieldsBytes),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.writer, logLine)
}
