package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"intern-match/internal/config"

	"go.uber.org/zap"
)

func TestRedis_BypassWhenNotConfigured(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(ctx, config.RedisConfig{}, zap.NewNop())

	if r.Client() != nil {
		t.Fatalf("expected no client")
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}
	ok, err := r.SetIfNotExists(ctx, "lock", "1", time.Second)
	if err != nil || !ok {
		t.Fatalf("expected lock to be granted, got ok=%v err=%v", ok, err)
	}
	if err := r.DeleteByPattern(ctx, "recommendations:*"); err != nil {
		t.Fatalf("delete pattern: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRedisLimiter_NilClientAllows(t *testing.T) {
	l := NewRedisLimiter(nil, "rl")
	if !l.Allow(context.Background(), "u", 1, time.Second) {
		t.Fatalf("nil limiter must allow")
	}
}

func TestMemoryLimiter_Window(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !l.Allow(ctx, "user-1", 3, time.Minute) {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.Allow(ctx, "user-1", 3, time.Minute) {
		t.Fatalf("fourth request should be limited")
	}
	if !l.Allow(ctx, "user-2", 3, time.Minute) {
		t.Fatalf("keys must be independent")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow(ctx, "user-1", 3, time.Minute) {
		t.Fatalf("new window should reset the counter")
	}
}

func TestMemoryLimiter_DisabledLimit(t *testing.T) {
	l := NewMemoryLimiter()
	for i := 0; i < 10; i++ {
		if !l.Allow(context.Background(), "k", 0, time.Minute) {
			t.Fatalf("zero limit disables limiting")
		}
	}
}
