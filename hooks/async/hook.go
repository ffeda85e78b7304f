// Package asynchook moves hook calls off the hot path. Events are queued to a
// small worker pool; when the queue is full they are dropped.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{RejectedEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000)
//	defer hooks.Close()
//
//	tr, _ := crosstalk.New(crosstalk.Options{Language: crosstalk.Orcish, Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/crosstalk"
)

type Hooks struct {
	inner   crosstalk.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ crosstalk.Hooks = (*Hooks)(nil)

func New(inner crosstalk.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = crosstalk.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) Rejected(reason string)     { h.try(func() { h.inner.Rejected(reason) }) }
func (h *Hooks) Translated(from, to string) { h.try(func() { h.inner.Translated(from, to) }) }
func (h *Hooks) DecodeFailed(kind string, err error) {
	h.try(func() { h.inner.DecodeFailed(kind, err) })
}
func (h *Hooks) RelayRejected(channel, reason string) {
	h.try(func() { h.inner.RelayRejected(channel, reason) })
}
