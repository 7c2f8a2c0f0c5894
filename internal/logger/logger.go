// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Level is the verbosity level of a Logger.
type Level int

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
	TRACE
)

// String returns the textual name of the level.
func (l Level) String() string {
	switch l {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	default:
		return "INFO"
	}
}

// LevelFromString parses level ignoring case, falling back to INFO for
// unknown values.
func LevelFromString(level string) Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l Level) hclogLevel() hclog.Level {
	switch l {
	case TRACE:
		return hclog.Trace
	case DEBUG:
		return hclog.Debug
	case WARN:
		return hclog.Warn
	case ERROR:
		return hclog.Error
	default:
		return hclog.Info
	}
}

// Logger describes the interface that must be implemented by all loggers.
type Logger interface {
	// WithName returns a new Logger instance with the specified name.
	WithName(name string) Logger

	// SetLevel updates the logger level.
	SetLevel(level Level)

	// Trace emit a message and key/value pairs at the TRACE level.
	Trace(msg string, args ...any)

	// Debug emit a message and key/value pairs at the DEBUG level.
	Debug(msg string, args ...any)

	// Info emit a message and key/value pairs at the INFO level.
	Info(msg string, args ...any)

	// Warn emit a message and key/value pairs at the WARN level.
	Warn(msg string, args ...any)

	// Error emit a message and key/value pairs at the ERROR level.
	Error(msg string, args ...any)
}

var _ Logger = hclogger{}

// nullLogger discards every message, returned when a context has no logger.
var nullLogger = hclogger{log: hclog.NewNullLogger()}

// hclogger adapts an hclog.Logger to the Logger interface.
type hclogger struct {
	log hclog.Logger
}

// New creates a JSON logger writing to writer at the INFO level.
func New(writer io.Writer) Logger {
	return hclogger{
		log: hclog.New(&hclog.LoggerOptions{
			JSONFormat: true,
			Output:     writer,
			TimeFn:     time.Now,
			Level:      INFO.hclogLevel(),
		}),
	}
}

func (h hclogger) WithName(name string) Logger {
	return hclogger{log: h.log.ResetNamed(name)}
}

func (h hclogger) SetLevel(level Level) {
	h.log.SetLevel(level.hclogLevel())
}

func (h hclogger) Trace(msg string, args ...any) { h.log.Trace(msg, args...) }
func (h hclogger) Debug(msg string, args ...any) { h.log.Debug(msg, args...) }
func (h hclogger) Info(msg string, args ...any)  { h.log.Info(msg, args...) }
func (h hclogger) Warn(msg string, args ...any)  { h.log.Warn(msg, args...) }
func (h hclogger) Error(msg string, args ...any) { h.log.Error(msg, args...) }
