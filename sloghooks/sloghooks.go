// Package sloghooks reports crosstalk events to a *slog.Logger.
package sloghooks

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/crosstalk"
	"github.com/unkn0wn-root/crosstalk/internal/util"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectedEvery   uint64
	TranslatedEvery uint64
	// Optional channel redactor. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectedCtr   atomic.Uint64
	translatedCtr atomic.Uint64
}

var _ crosstalk.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(s string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(s)
	}
	return util.Fingerprint("chan", s)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n <= 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Rejected(reason string) {
	if h.l == nil || !sample(h.opts.RejectedEvery, &h.rejectedCtr) {
		return
	}
	h.l.Debug("crosstalk.rejected", "reason", reason)
}

func (h *Hooks) Translated(from, to string) {
	if h.l == nil || !sample(h.opts.TranslatedEvery, &h.translatedCtr) {
		return
	}
	h.l.Debug("crosstalk.translated", "from", from, "to", to)
}

func (h *Hooks) DecodeFailed(kind string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("crosstalk.decode_failed", "kind", kind, "err", err)
}

func (h *Hooks) RelayRejected(channel, reason string) {
	if h.l == nil {
		return
	}
	lvl := slog.LevelInfo
	if reason == "store_pressure" {
		lvl = slog.LevelWarn
	}
	h.l.Log(context.Background(), lvl, "crosstalk.relay_rejected", "channel", h.redact(channel), "reason", reason)
}
