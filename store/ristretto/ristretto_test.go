package ristretto

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	s, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close(ctx)

	val := []byte("й й 2 1 2 3 6 0 й й й 1")
	ok, err := s.Set(ctx, "post:t:c:1", val, int64(len(val)), time.Minute)
	if err != nil || !ok {
		t.Fatalf("Set ok=%v err=%v", ok, err)
	}
	s.Wait()

	got, ok, err := s.Get(ctx, "post:t:c:1")
	if err != nil || !ok || string(got) != string(val) {
		t.Fatalf("Get ok=%v err=%v got=%q", ok, err, got)
	}

	if err := s.Del(ctx, "post:t:c:1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "post:t:c:1"); ok {
		t.Fatalf("expected miss after Del")
	}
	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
}
