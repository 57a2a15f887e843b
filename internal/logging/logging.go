// Package logging builds the logrus logger used by the cryptutil command.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Supported log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to out in the given format. verbose selects
// DebugLevel; otherwise the level is WarnLevel so library debug output stays
// quiet.
func New(out io.Writer, verbose bool, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("logging: unknown format %q (want %s or %s)", format, FormatText, FormatJSON)
	}

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger, nil
}

// Install copies the configuration of logger onto the logrus standard
// logger, which the library packages log through.
func Install(logger *logrus.Logger) {
	std := logrus.StandardLogger()
	std.SetOutput(logger.Out)
	std.SetFormatter(logger.Formatter)
	std.SetLevel(logger.GetLevel())
}
