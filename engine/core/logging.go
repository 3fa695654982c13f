package core

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type LogLevel = log.Level

const (
	DebugLevel LogLevel = log.DebugLevel
	InfoLevel  LogLevel = log.InfoLevel
	WarnLevel  LogLevel = log.WarnLevel
	ErrorLevel LogLevel = log.ErrorLevel
	FatalLevel LogLevel = log.FatalLevel
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "Toolbox ⏱️ ",
				// skip the Log* wrappers when reporting the caller
				CallerOffset: 1,
			})
			l.SetLevel(log.DebugLevel)
			singleton = &logger{l}
		})
	return singleton
}

// SetLogLevel changes the level of the shared logger.
func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(level)
}

// ParseLogLevel converts a config value such as "info" into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	l, err := log.ParseLevel(level)
	if err != nil {
		return DebugLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return l, nil
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
