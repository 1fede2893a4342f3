// Package logging provides the component-tagged logger used across inkpoint.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging shape every subsystem accepts.
type Logger interface {
	Debugf(component string, format string, args ...interface{})
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// ZeroLogger writes through zerolog with the component as a field.
type ZeroLogger struct {
	base zerolog.Logger
}

// New creates a configured logger based on Options.
func New(opts Options) (*ZeroLogger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	output := writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	return &ZeroLogger{base: zerolog.New(output).Level(level).With().Timestamp().Logger()}, nil
}

func (l *ZeroLogger) Debugf(component, format string, args ...interface{}) {
	l.base.Debug().Str("component", component).Msgf(format, args...)
}

func (l *ZeroLogger) Infof(component, format string, args ...interface{}) {
	l.base.Info().Str("component", component).Msgf(format, args...)
}

func (l *ZeroLogger) Errorf(component, format string, args ...interface{}) {
	l.base.Error().Str("component", component).Msgf(format, args...)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, string, ...interface{}) {}
func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
