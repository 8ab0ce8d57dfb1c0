// Package logging configures the logrus logger used by tabview.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// DefaultLevel keeps command output free of routine log lines.
const DefaultLevel = "warn"

// Setup returns a logger writing to w at the given level and format.
//
// Level values: "debug", "info", "warn", "error" (empty means DefaultLevel).
// Format values: "text", "json" (empty means text).
func Setup(level, format string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", types.LogFormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case types.LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrLogFormatUnknown, format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything. Used by tests and callers
// that have no log destination.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func parseLevel(level string) (logrus.Level, error) {
	name, err := types.CanonicalLogLevel(level)
	if err != nil {
		return logrus.PanicLevel, err
	}
	switch name {
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.WarnLevel, nil
	}
}
