package out

import (
	"fmt"
	"strings"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

var logLevelWeights = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

func ParseLogLevel(level string) (LogLevel, error) {
	l := LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	if _, ok := logLevelWeights[l]; !ok {
		return "", fmt.Errorf("unknown log level: %s", level)
	}
	return l, nil
}

// Enables сообщает, пишет ли логгер с уровнем l сообщение уровня other
func (l LogLevel) Enables(other LogLevel) bool {
	return logLevelWeights[other] >= logLevelWeights[l]
}

type LogFields map[string]interface{}

type LoggerPort interface {
	Debug(event string, fields LogFields)
	Info(event string, fields LogFields)
	Warn(event string, fields LogFields)
	Error(event string, fields LogFields)
	WithFields(fields LogFields) LoggerPort
	WithModule(module string) LoggerPort
}
