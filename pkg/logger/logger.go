package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug logging when set to "true".
const DebugEnv = "CASEINSPECT_DEBUG"

// DebugEnabled reports whether debug logging was requested through the environment.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) == "true" || os.Getenv("DEBUG") == "true"
}

// New returns a text logger for component writing to w. Only warnings and
// errors are shown unless verbose is set or debug is enabled in the environment.
func New(w io.Writer, component string, verbose bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	l.SetLevel(logrus.WarnLevel)
	if verbose || DebugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	}

	return l.WithField("component", component)
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
