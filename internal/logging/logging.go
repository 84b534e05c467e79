// Package logging builds the logrus loggers used across keybind.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Environment variables consulted by New.
const (
	EnvLevel = "KEYBIND_LOG_LEVEL"
	EnvDebug = "KEYBIND_DEBUG"
)

// DefaultLevel is used when neither Options nor the environment set one.
const DefaultLevel = logrus.WarnLevel

// Options configures a logger.
type Options struct {
	// Level is a logrus level name. Empty falls back to KEYBIND_LOG_LEVEL.
	Level string

	// JSON selects the JSON formatter instead of text.
	JSON bool

	// Output defaults to os.Stderr.
	Output io.Writer

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// New creates a logger. KEYBIND_DEBUG=true forces the debug level.
func New(opts Options) (*logrus.Logger, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	level := DefaultLevel
	name := opts.Level
	if name == "" {
		name = getenv(EnvLevel)
	}
	if name != "" {
		lvl, err := logrus.ParseLevel(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = lvl
	}
	if v := getenv(EnvDebug); v == "true" || v == "1" {
		level = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	}
	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithField("component", name)
}
