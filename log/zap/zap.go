// Package zap adapts a *zap.Logger to crosstalk.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/crosstalk"
)

var _ crosstalk.Logger = Logger{}

// Logger forwards to L. Fields are only converted when the level is enabled.
type Logger struct{ L *zap.Logger }

// New names the logger "crosstalk" so its lines are easy to filter.
func New(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return Logger{L: l.Named("crosstalk")}
}

func (z Logger) Debug(msg string, f crosstalk.Fields) { z.write(zapcore.DebugLevel, msg, f) }
func (z Logger) Info(msg string, f crosstalk.Fields)  { z.write(zapcore.InfoLevel, msg, f) }
func (z Logger) Warn(msg string, f crosstalk.Fields)  { z.write(zapcore.WarnLevel, msg, f) }
func (z Logger) Error(msg string, f crosstalk.Fields) { z.write(zapcore.ErrorLevel, msg, f) }

func (z Logger) write(lvl zapcore.Level, msg string, f crosstalk.Fields) {
	if z.L == nil {
		return
	}
	if ce := z.L.Check(lvl, msg); ce != nil {
		ce.Write(fields(f)...)
	}
}

// fields sorts by key so output is stable across runs.
func fields(f crosstalk.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
