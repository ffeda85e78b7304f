package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("want ErrNilClient, got %v", err)
	}
}

// Runs against a live server when CROSSTALK_REDIS_ADDR is set.
func TestSetGetDelLive(t *testing.T) {
	addr := os.Getenv("CROSSTALK_REDIS_ADDR")
	if addr == "" {
		t.Skip("CROSSTALK_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := New(Config{Client: goredis.NewClient(&goredis.Options{Addr: addr}), CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)

	key := "post:test:" + t.Name()
	if ok, err := s.Set(ctx, key, []byte("v"), 0, time.Minute); err != nil || !ok {
		t.Fatalf("Set ok=%v err=%v", ok, err)
	}
	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get ok=%v err=%v got=%q", ok, err, got)
	}
	if err := s.Del(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Fatalf("expected miss after Del")
	}
}
