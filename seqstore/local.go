package seqstore

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	Seq       uint64
	UpdatedAt time.Time
}

// Local keeps counters in-process. With a cleanup interval and retention it
// forgets channels idle for longer than retention; a forgotten channel
// restarts at 1.
type Local struct {
	mu     sync.RWMutex
	seqs   map[string]localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ SeqStore = (*Local)(nil)

func NewLocal(cleanupInterval, retention time.Duration) *Local {
	s := &Local{seqs: make(map[string]localEntry)}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Current(_ context.Context, channel string) (uint64, error) {
	s.mu.RLock()
	e := s.seqs[channel]
	s.mu.RUnlock()
	return e.Seq, nil
}

func (s *Local) Next(_ context.Context, channel string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	e := s.seqs[channel]
	e.Seq++
	e.UpdatedAt = now
	s.seqs[channel] = e
	s.mu.Unlock()
	return e.Seq, nil
}

func (s *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for k, e := range s.seqs {
		if e.UpdatedAt.Before(cutoff) {
			delete(s.seqs, k)
		}
	}
	s.mu.Unlock()
}

// Close stops the cleanup loop. Safe to call more than once.
func (s *Local) Close(_ context.Context) error {
	s.once.Do(func() {
		if s.stopCh != nil {
			close(s.stopCh)
			s.ticker.Stop()
			s.wg.Wait()
		}
	})
	return nil
}
