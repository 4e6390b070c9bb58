// Package logruslogger adapts logrus as a pluggable backend for
// log.Logger, for callers who already run a structured-logging stack and
// want enforcement decisions folded into it instead of the bare stdlib
// DefaultLogger.
package logruslogger

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/EnthuZiastic/casbin-ex2-sub003/log"
)

// Logger implements log.Logger on top of a *logrus.Logger (or the
// package-level logrus.StandardLogger() if none is supplied).
type Logger struct {
	entry   *logrus.Logger
	enabled bool
}

// New wraps l, or logrus.StandardLogger() when l is nil.
func New(l *logrus.Logger) *Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Logger{entry: l}
}

func (l *Logger) EnableLog(enable bool) {
	l.enabled = enable
}

func (l *Logger) IsEnabled() bool {
	return l.enabled
}

func (l *Logger) LogModel(model [][]string) {
	if !l.enabled {
		return
	}
	lines := make([]string, len(model))
	for i, v := range model {
		lines[i] = strings.Join(v, ", ")
	}
	l.entry.WithField("component", "model").Info(strings.Join(lines, " | "))
}

func (l *Logger) LogEnforce(matcher string, request []interface{}, result bool, explains [][]string) {
	if !l.enabled {
		return
	}
	l.entry.WithFields(logrus.Fields{
		"component": "enforce",
		"matcher":   matcher,
		"request":   request,
		"result":    result,
		"explain":   explains,
	}).Info("enforcement decision")
}

func (l *Logger) LogRole(roles []string) {
	if !l.enabled || len(roles) == 0 {
		return
	}
	l.entry.WithField("component", "role").Info(strings.Join(roles, ", "))
}

func (l *Logger) LogPolicy(policy map[string][][]string) {
	if !l.enabled {
		return
	}
	l.entry.WithField("component", "policy").WithField("policy", policy).Info("policy snapshot")
}

func (l *Logger) LogError(err error, msg ...string) {
	if !l.enabled {
		return
	}
	l.entry.WithField("component", "error").WithError(err).Error(strings.Join(msg, " "))
}

var _ log.Logger = (*Logger)(nil)
