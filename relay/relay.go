// Package relay is a mailbox for framed messages. Parties post wire text to a
// named channel; the relay accepts only input that passes the cheap shape
// check, numbers it, and stores it until it expires. Readers fetch by sequence
// and decode with their own language.
//
// Keys:
//
//	post:<ns>:<channel>:<seq>
package relay

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/unkn0wn-root/crosstalk"
	"github.com/unkn0wn-root/crosstalk/codec"
	"github.com/unkn0wn-root/crosstalk/internal/record"
	"github.com/unkn0wn-root/crosstalk/internal/wire"
	"github.com/unkn0wn-root/crosstalk/seqstore"
	"github.com/unkn0wn-root/crosstalk/store"
)

const (
	defaultTTL            = 24 * time.Hour
	defaultMaxRecordBytes = 1 << 20
)

var (
	ErrNotEncoded     = errors.New("relay: input is not an encoded frame")
	ErrStoreRejected  = errors.New("relay: store rejected the post")
	ErrInvalidChannel = errors.New("relay: channel name is required")
)

// Envelope is what the relay keeps per post.
type Envelope struct {
	Channel  string    `json:"channel" cbor:"1,keyasint" msgpack:"channel"`
	Seq      uint64    `json:"seq" cbor:"2,keyasint" msgpack:"seq"`
	Language string    `json:"language" cbor:"3,keyasint" msgpack:"language"` // as announced in the frame
	Wire     string    `json:"wire" cbor:"4,keyasint" msgpack:"wire"`
	PostedAt time.Time `json:"posted_at" cbor:"5,keyasint" msgpack:"posted_at"`
}

// Options tune a Relay. Namespace, Store and Dialect are required.
type Options struct {
	// Required
	Namespace string
	Store     store.Store
	Dialect   crosstalk.Dialect // vets posts, encodes Send, decodes Receive

	Codec          codec.Codec[Envelope] // nil => codec.Msgpack[Envelope]
	Seq            seqstore.SeqStore     // nil => seqstore.NewLocal(0, 0)
	TTL            time.Duration         // 0 => 24h
	MaxRecordBytes int                   // 0 => 1 MiB; caps encoded envelopes on Post and Fetch
	Logger         crosstalk.Logger      // nil => NopLogger
	Hooks          crosstalk.Hooks       // nil => NopHooks
	Now            func() time.Time      // nil => time.Now
}

type Relay struct {
	ns       string
	store    store.Store
	dialect  crosstalk.Dialect
	codec    codec.Codec[Envelope]
	seq      seqstore.SeqStore
	ttl      time.Duration
	maxBytes int
	log      crosstalk.Logger
	hooks    crosstalk.Hooks
	now      func() time.Time
}

func New(opts Options) (*Relay, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("relay: store is required")
	}
	if opts.Dialect == nil {
		return nil, fmt.Errorf("relay: dialect is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("relay: namespace is required")
	}

	r := &Relay{
		ns:      opts.Namespace,
		store:   opts.Store,
		dialect: opts.Dialect,
		seq:     opts.Seq,
		ttl:     opts.TTL,
		log:     opts.Logger,
		hooks:   opts.Hooks,
		now:     opts.Now,
	}
	if r.ttl == 0 {
		r.ttl = defaultTTL
	}
	if r.log == nil {
		r.log = crosstalk.NopLogger{}
	}
	if r.hooks == nil {
		r.hooks = crosstalk.NopHooks{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.seq == nil {
		r.seq = seqstore.NewLocal(0, 0)
	}

	inner := opts.Codec
	if inner == nil {
		inner = codec.Msgpack[Envelope]{}
	}
	maxBytes := opts.MaxRecordBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxRecordBytes
	}
	r.maxBytes = maxBytes
	r.codec = codec.Limit[Envelope]{Inner: inner, MaxDecode: maxBytes}
	return r, nil
}

// Close closes the sequence store first (best effort), then the store.
func (r *Relay) Close(ctx context.Context) error {
	_ = r.seq.Close(ctx)
	return r.store.Close(ctx)
}

// Post stores wire text that passes the dialect's shape check and returns its
// sequence number. The frame may be announced in any language.
//
// Vetting failures (channel, shape, codec, size) never take a sequence
// number. A store error or rejection after the number is taken leaves a gap
// that Fetch reports as a miss.
func (r *Relay) Post(ctx context.Context, channel, wireText string) (uint64, error) {
	if channel == "" {
		return 0, ErrInvalidChannel
	}
	if !r.dialect.IsEncoded(wireText) {
		r.hooks.RelayRejected(channel, "not_encoded")
		r.log.Debug("post rejected (not encoded)", crosstalk.Fields{"channel": channel})
		return 0, ErrNotEncoded
	}

	syms := wire.Strip(wireText)
	env := Envelope{
		Channel:  channel,
		Seq:      math.MaxUint64, // widest encoding; sized before a number is taken
		Language: wire.Join(wire.Announcement(syms)),
		Wire:     wire.Join(syms),
		PostedAt: r.now().UTC(),
	}
	if _, err := r.encode(channel, env); err != nil {
		return 0, err
	}

	seq, err := r.seq.Next(ctx, r.seqKey(channel))
	if err != nil {
		return 0, fmt.Errorf("relay: next sequence: %w", err)
	}
	env.Seq = seq
	payload, err := r.encode(channel, env)
	if err != nil {
		return 0, err
	}
	rec := record.Encode(seq, payload)
	k := r.postKey(channel, seq)
	ok, err := r.store.Set(ctx, k, rec, int64(len(rec)), r.ttl)
	if err != nil {
		return 0, err
	}
	if !ok {
		r.hooks.RelayRejected(channel, "store_pressure")
		r.log.Warn("post rejected by store (pressure)", crosstalk.Fields{"key": k})
		return 0, ErrStoreRejected
	}
	return seq, nil
}

// encode serialises env and enforces MaxRecordBytes, so nothing is stored
// that Fetch would refuse to read.
func (r *Relay) encode(channel string, env Envelope) ([]byte, error) {
	payload, err := r.codec.Encode(env)
	if err != nil {
		return nil, err
	}
	if r.maxBytes > 0 && len(payload) > r.maxBytes {
		r.hooks.RelayRejected(channel, "too_large")
		return nil, fmt.Errorf("%w: envelope is %d bytes, limit %d", codec.ErrTooLarge, len(payload), r.maxBytes)
	}
	return payload, nil
}

// Send encodes message in the relay's own language and posts it.
func (r *Relay) Send(ctx context.Context, channel, message string) (uint64, error) {
	w, err := r.dialect.Encode(message)
	if err != nil {
		return 0, err
	}
	return r.Post(ctx, channel, w)
}

// Fetch returns the envelope stored for (channel, seq). Missing, expired and
// corrupt entries are all reported as ok=false; corrupt entries are deleted.
func (r *Relay) Fetch(ctx context.Context, channel string, seq uint64) (Envelope, bool, error) {
	k := r.postKey(channel, seq)
	raw, ok, err := r.store.Get(ctx, k)
	if err != nil || !ok {
		return Envelope{}, false, err
	}
	gotSeq, payload, err := record.Decode(raw)
	if err != nil {
		r.heal(ctx, k, "corrupt")
		return Envelope{}, false, nil
	}
	if gotSeq != seq {
		r.heal(ctx, k, "seq_mismatch")
		return Envelope{}, false, nil
	}
	env, err := r.codec.Decode(payload)
	if err != nil {
		r.heal(ctx, k, "envelope_decode")
		return Envelope{}, false, nil
	}
	if env.Channel != channel || env.Seq != seq {
		r.heal(ctx, k, "envelope_mismatch")
		return Envelope{}, false, nil
	}
	return env, true, nil
}

// Receive fetches a post and decodes it with the relay's language.
func (r *Relay) Receive(ctx context.Context, channel string, seq uint64) (string, bool, error) {
	env, ok, err := r.Fetch(ctx, channel, seq)
	if err != nil || !ok {
		return "", false, err
	}
	msg, err := r.dialect.Decode(env.Wire)
	if err != nil {
		return "", false, err
	}
	return msg, true, nil
}

// Latest returns the last sequence number issued on channel (0 if none).
func (r *Relay) Latest(ctx context.Context, channel string) (uint64, error) {
	return r.seq.Current(ctx, r.seqKey(channel))
}

func (r *Relay) heal(ctx context.Context, key, reason string) {
	_ = r.store.Del(ctx, key)
	r.log.Debug("relay entry dropped", crosstalk.Fields{"key": key, "reason": reason})
}

func (r *Relay) seqKey(channel string) string {
	return r.ns + ":" + channel
}

func (r *Relay) postKey(channel string, seq uint64) string {
	return "post:" + r.ns + ":" + channel + ":" + strconv.FormatUint(seq, 10)
}
