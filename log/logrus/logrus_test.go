package logrus

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/crosstalk"
)

func TestForwardsWithFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.InfoLevel)
	l := New(base)

	l.Debug("hidden", nil)
	l.Info("decoded", crosstalk.Fields{"symbols": 15})
	l.Error("failed", crosstalk.Fields{logrus.ErrorKey: errors.New("boom")})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "decoded", entries[0].Message)
	assert.Equal(t, 15, entries[0].Data["symbols"])
	assert.Equal(t, "crosstalk", entries[0].Data["component"])
	assert.Equal(t, logrus.ErrorLevel, entries[1].Level)
	assert.EqualError(t, entries[1].Data[logrus.ErrorKey].(error), "boom")
}

func TestZeroValueIsSilent(t *testing.T) {
	assert.NotPanics(t, func() { Logger{}.Warn("x", nil) })

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	assert.NotPanics(t, func() { New(quiet).Warn("x", crosstalk.Fields{"a": 1}) })
}
