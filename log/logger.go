// Package log wraps logrus with the category-tagged helpers the rest of the
// codebase logs through.
package log

import (
	"io"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
)

// Logger tags every entry with a category so related components can be
// filtered together.
type Logger struct {
	*logrus.Logger
	categoryFilter *regexp.Regexp
}

// New returns a logger writing to stderr. Verbose enables debug level.
func New(verbose bool) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return &Logger{Logger: l}
}

// NullLogger returns a logger that discards everything. Handy in tests.
func NullLogger() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

// SetCategoryFilter restricts output to categories matching expr. An empty
// expression clears the filter.
func (l *Logger) SetCategoryFilter(expr string) error {
	if expr == "" {
		l.categoryFilter = nil
		return nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return err
	}
	l.categoryFilter = re
	return nil
}

// DebugMode returns true if the logger level is set to Debug or higher.
func (l *Logger) DebugMode() bool {
	return l.Logger.GetLevel() >= logrus.DebugLevel
}

func (l *Logger) Debugf(category, msg string, args ...any) {
	l.logf(logrus.DebugLevel, category, msg, args...)
}

func (l *Logger) Infof(category, msg string, args ...any) {
	l.logf(logrus.InfoLevel, category, msg, args...)
}

func (l *Logger) Warnf(category, msg string, args ...any) {
	l.logf(logrus.WarnLevel, category, msg, args...)
}

func (l *Logger) Errorf(category, msg string, args ...any) {
	l.logf(logrus.ErrorLevel, category, msg, args...)
}

func (l *Logger) logf(level logrus.Level, category, msg string, args ...any) {
	if l.categoryFilter != nil && !l.categoryFilter.MatchString(category) {
		return
	}
	l.WithField("category", category).Logf(level, msg, args...)
}
