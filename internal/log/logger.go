package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	logger *Logger
	once   sync.Once
)

// Logger wraps logrus with colored progress output for the CLI
type Logger struct {
	*logrus.Logger
	out   io.Writer
	green *color.Color
	cyan  *color.Color
	red   *color.Color
	bold  *color.Color
}

// New returns the process-wide logger
func New() *Logger {
	once.Do(func() {
		logger = newLogger(os.Stderr)
		if os.Getenv("DEBUG") == "true" {
			logger.SetLevel(logrus.DebugLevel)
		}
	})
	return logger
}

// NewWithWriter builds a standalone logger writing to w. Used by tests.
func NewWithWriter(w io.Writer) *Logger {
	return newLogger(w)
}

func newLogger(w io.Writer) *Logger {
	l := &Logger{
		Logger: logrus.New(),
		out:    w,
		green:  color.New(color.FgGreen),
		cyan:   color.New(color.FgCyan),
		red:    color.New(color.FgRed),
		bold:   color.New(color.Bold),
	}
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006/01/02 15:04:05",
		FullTimestamp:   true,
		DisableSorting:  true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerbose switches between debug and info level
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(logrus.DebugLevel)
		return
	}
	l.SetLevel(logrus.InfoLevel)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

// Step prints a progress line such as "→ Launching rod... "
func (l *Logger) Step(format string, args ...interface{}) {
	l.cyan.Fprint(l.out, "→ ")
	fmt.Fprintf(l.out, format, args...)
}

// Success finishes a step or prints a final result line
func (l *Logger) Success(format string, args ...interface{}) {
	l.green.Fprintf(l.out, format+"\n", args...)
}

// Failure marks a step as failed
func (l *Logger) Failure(format string, args ...interface{}) {
	l.red.Fprintf(l.out, format+"\n", args...)
}

// Highlight renders s in bold
func (l *Logger) Highlight(s string) string {
	return l.bold.Sprint(s)
}

// IsDebugEnabled reports whether debug logging is on
func (l *Logger) IsDebugEnabled() bool {
	return l.GetLevel() == logrus.DebugLevel
}
