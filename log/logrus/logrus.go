// Package logrus adapts a *logrus.Entry to crosstalk.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/crosstalk"
)

var _ crosstalk.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New tags every line with component=crosstalk.
func New(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return Logger{E: l.WithField("component", "crosstalk")}
}

func (l Logger) Debug(msg string, f crosstalk.Fields) { l.log(logrus.DebugLevel, msg, f) }
func (l Logger) Info(msg string, f crosstalk.Fields)  { l.log(logrus.InfoLevel, msg, f) }
func (l Logger) Warn(msg string, f crosstalk.Fields)  { l.log(logrus.WarnLevel, msg, f) }
func (l Logger) Error(msg string, f crosstalk.Fields) { l.log(logrus.ErrorLevel, msg, f) }

func (l Logger) log(lvl logrus.Level, msg string, f crosstalk.Fields) {
	if l.E == nil || !l.E.Logger.IsLevelEnabled(lvl) {
		return
	}
	e := l.E
	if len(f) > 0 {
		e = e.WithFields(logrus.Fields(f))
	}
	e.Log(lvl, msg)
}
