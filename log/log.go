// Package log builds loggers for the scanpipe packages.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// New returns a new logger instance. Debug output is enabled when the
// SCANPIPE_DEBUG environment variable is set to a true value.
func New() *logrus.Logger {
	l := logrus.New()
	if debug, err := strconv.ParseBool(os.Getenv("SCANPIPE_DEBUG")); err == nil && debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
