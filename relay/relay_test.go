package relay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/crosstalk"
	"github.com/unkn0wn-root/crosstalk/codec"
	"github.com/unkn0wn-root/crosstalk/internal/record"
	"github.com/unkn0wn-root/crosstalk/store"
	"github.com/unkn0wn-root/crosstalk/store/bigcache"
	"github.com/unkn0wn-root/crosstalk/store/ristretto"
)

type memStore struct {
	mu     sync.Mutex
	m      map[string][]byte
	reject bool
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore { return &memStore{m: make(map[string][]byte)} }

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return false, nil
	}
	s.m[key] = value
	return true, nil
}

func (s *memStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *memStore) Close(context.Context) error { return nil }

type relayHooks struct {
	crosstalk.NopHooks
	rejected []string
}

func (h *relayHooks) RelayRejected(channel, reason string) {
	h.rejected = append(h.rejected, channel+":"+reason)
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRelay(t *testing.T, st store.Store, l crosstalk.Language, optsOpt func(*Options)) *Relay {
	t.Helper()
	opts := Options{
		Namespace: "test",
		Store:     st,
		Dialect:   crosstalk.MustNew(l),
		Now:       func() time.Time { return fixedNow },
	}
	if optsOpt != nil {
		optsOpt(&opts)
	}
	r, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close(context.Background()) })
	return r
}

func TestNewRequiresOptions(t *testing.T) {
	d := crosstalk.MustNew(crosstalk.Common)
	_, err := New(Options{Namespace: "n", Dialect: d})
	assert.Error(t, err)
	_, err = New(Options{Namespace: "n", Store: newMemStore()})
	assert.Error(t, err)
	_, err = New(Options{Store: newMemStore(), Dialect: d})
	assert.Error(t, err)
}

func TestPostForeignReceiveLocal(t *testing.T) {
	ctx := context.Background()
	r := newTestRelay(t, newMemStore(), crosstalk.Common, nil)

	w, err := crosstalk.MustNew(crosstalk.Orcish).Encode("Lok'tar ogar!")
	require.NoError(t, err)

	seq, err := r.Post(ctx, "barrens", w)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	env, ok, err := r.Fetch(ctx, "barrens", seq)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "barrens", env.Channel)
	assert.Equal(t, crosstalk.Orcish.String(), env.Language)
	assert.Equal(t, w, env.Wire)
	assert.True(t, env.PostedAt.Equal(fixedNow))

	msg, ok, err := r.Receive(ctx, "barrens", seq)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Lok'tar ogar!", msg)
}

func TestPostNormalisesSpacing(t *testing.T) {
	ctx := context.Background()
	r := newTestRelay(t, newMemStore(), crosstalk.Orcish, nil)

	seq, err := r.Post(ctx, "c", "йй2 12360й 103   йй1")
	require.NoError(t, err)
	env, ok, err := r.Fetch(ctx, "c", seq)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "й й 2 1 2 3 6 0 й 1 0 3 й й 1", env.Wire)
}

func TestPostRejectsNonFrames(t *testing.T) {
	ctx := context.Background()
	h := &relayHooks{}
	r := newTestRelay(t, newMemStore(), crosstalk.Common, func(o *Options) { o.Hooks = h })

	_, err := r.Post(ctx, "c", "hello there")
	assert.ErrorIs(t, err, ErrNotEncoded)
	_, err = r.Post(ctx, "", "й й 2 1 2 3 ц 0 й й й 1")
	assert.ErrorIs(t, err, ErrInvalidChannel)
	assert.Equal(t, []string{"c:not_encoded"}, h.rejected)

	latest, err := r.Latest(ctx, "c")
	require.NoError(t, err)
	assert.Zero(t, latest, "vetting rejections must not consume sequence numbers")
}

func TestSendAndLatest(t *testing.T) {
	ctx := context.Background()
	r := newTestRelay(t, newMemStore(), crosstalk.Debug, nil)

	for i, m := range []string{"one", "two", "three"} {
		seq, err := r.Send(ctx, "c", m)
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), seq)
	}
	latest, err := r.Latest(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), latest)

	msg, ok, err := r.Receive(ctx, "c", 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", msg)

	_, err = r.Send(ctx, "c", "€")
	assert.ErrorIs(t, err, crosstalk.ErrUnsupportedChar)
}

func TestFetchMiss(t *testing.T) {
	r := newTestRelay(t, newMemStore(), crosstalk.Common, nil)
	_, ok, err := r.Fetch(context.Background(), "c", 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetchSelfHealsCorrupt(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestRelay(t, st, crosstalk.Common, nil)

	seq, err := r.Send(ctx, "c", "x")
	require.NoError(t, err)
	k := r.postKey("c", seq)

	st.m[k] = []byte("garbage")
	_, ok, err := r.Fetch(ctx, "c", seq)
	require.NoError(t, err)
	assert.False(t, ok)
	_, present := st.m[k]
	assert.False(t, present, "corrupt entry should be deleted")
}

func TestFetchSelfHealsSeqMismatch(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestRelay(t, st, crosstalk.Common, nil)

	seq, err := r.Send(ctx, "c", "x")
	require.NoError(t, err)

	// same record copied under a different sequence
	moved := r.postKey("c", seq+1)
	st.m[moved] = st.m[r.postKey("c", seq)]
	_, ok, err := r.Fetch(ctx, "c", seq+1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, present := st.m[moved]
	assert.False(t, present)

	// valid record framing, undecodable envelope
	bad := r.postKey("c", 7)
	st.m[bad] = record.Encode(7, []byte{0xc1})
	_, ok, err = r.Fetch(ctx, "c", 7)
	require.NoError(t, err)
	assert.False(t, ok)
	_, present = st.m[bad]
	assert.False(t, present)
}

func TestStoreRejection(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.reject = true
	h := &relayHooks{}
	r := newTestRelay(t, st, crosstalk.Common, func(o *Options) { o.Hooks = h })

	_, err := r.Send(ctx, "c", "x")
	assert.ErrorIs(t, err, ErrStoreRejected)
	assert.Equal(t, []string{"c:store_pressure"}, h.rejected)

	// the number was taken before the store refused the write
	latest, err := r.Latest(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), latest)

	st.reject = false
	seq, err := r.Send(ctx, "c", "y")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)
	_, ok, err := r.Fetch(ctx, "c", 1)
	require.NoError(t, err)
	assert.False(t, ok, "the gap reads as a miss")
}

func TestMaxRecordBytes(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	h := &relayHooks{}
	r := newTestRelay(t, st, crosstalk.Common, func(o *Options) {
		o.MaxRecordBytes = 16
		o.Hooks = h
	})

	_, err := r.Send(ctx, "c", "too long for sixteen bytes")
	assert.ErrorIs(t, err, codec.ErrTooLarge)
	assert.Equal(t, []string{"c:too_large"}, h.rejected)
	assert.Empty(t, st.m, "oversize envelopes must not be stored")

	latest, err := r.Latest(ctx, "c")
	require.NoError(t, err)
	assert.Zero(t, latest, "oversize posts must not consume sequence numbers")
}

func TestMaxRecordBytesAcceptsWhatFetchReads(t *testing.T) {
	ctx := context.Background()
	w, err := crosstalk.MustNew(crosstalk.Common).Encode("hi")
	require.NoError(t, err)

	// size the cap to the widest envelope this post can produce
	probe := Envelope{Channel: "c", Seq: ^uint64(0), Language: crosstalk.Common.String(), Wire: w, PostedAt: fixedNow}
	b, err := codec.Msgpack[Envelope]{}.Encode(probe)
	require.NoError(t, err)

	r := newTestRelay(t, newMemStore(), crosstalk.Common, func(o *Options) { o.MaxRecordBytes = len(b) })
	seq, err := r.Post(ctx, "c", w)
	require.NoError(t, err)
	msg, ok, err := r.Receive(ctx, "c", seq)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hi", msg)
}

func TestCBOREnvelopesOnBigCache(t *testing.T) {
	ctx := context.Background()
	st, err := bigcache.New(bigcache.Config{LifeWindow: time.Minute, MaxEntriesInWindow: 1000, MaxEntrySize: 512})
	require.NoError(t, err)
	r := newTestRelay(t, st, crosstalk.Orcish, func(o *Options) {
		o.Codec = codec.MustCBOR[Envelope](true)
	})

	w, err := crosstalk.MustNew(crosstalk.Debug).Encode("Привет, Thrall!")
	require.NoError(t, err)
	seq, err := r.Post(ctx, "orgrimmar", w)
	require.NoError(t, err)

	msg, ok, err := r.Receive(ctx, "orgrimmar", seq)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Привет, Thrall!", msg)
}

func TestRistrettoStore(t *testing.T) {
	ctx := context.Background()
	st, err := ristretto.New(ristretto.Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	r := newTestRelay(t, st, crosstalk.Common, func(o *Options) {
		o.Codec = codec.JSON[Envelope]{}
	})

	seq, err := r.Send(ctx, "stormwind", "For the Alliance!")
	require.NoError(t, err)
	st.Wait()

	msg, ok, err := r.Receive(ctx, "stormwind", seq)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "For the Alliance!", msg)
}
