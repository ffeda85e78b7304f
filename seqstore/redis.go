package seqstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares counters across relay processes and survives restarts.
// With a TTL, a channel idle for longer than ttl restarts at 1.
type Redis struct {
	rdb redis.UniversalClient
	ns  string        // should match relay.Options.Namespace
	ttl time.Duration // 0 disables expiry
}

var _ SeqStore = (*Redis)(nil)

func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace}
}

// NewRedisWithTTL refreshes the counter TTL on every Next. ttl <= 0 disables expiry.
func NewRedisWithTTL(client redis.UniversalClient, namespace string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ns: namespace, ttl: ttl}
}

func (s *Redis) key(channel string) string { return "seq:" + s.ns + ":" + channel }

func (s *Redis) Current(ctx context.Context, channel string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(channel)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis seq parse: %w", err)
	}
	return u, nil
}

func (s *Redis) Next(ctx context.Context, channel string) (uint64, error) {
	k := s.key(channel)
	if s.ttl <= 0 {
		return s.rdb.Incr(ctx, k).Uint64()
	}
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Uint64()
}

func (s *Redis) Cleanup(time.Duration) {} // keys expire server-side

// Close does not close the client; the caller owns it.
func (s *Redis) Close(context.Context) error { return nil }
