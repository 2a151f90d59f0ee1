package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheManager(client), mr
}

func TestCacheHelperRoundTrip(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	if err := cm.Sessions.SetString(ctx, "abc", "1", time.Minute); err != nil {
		t.Fatalf("SetString() error = %v", err)
	}
	if !mr.Exists("session:revoked:abc") {
		t.Fatal("expected prefixed key in redis")
	}

	exists, err := cm.Sessions.Exists(ctx, "abc")
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v", exists, err)
	}

	mr.FastForward(2 * time.Minute)
	exists, err = cm.Sessions.Exists(ctx, "abc")
	if err != nil || exists {
		t.Fatalf("Exists() after ttl = %v, %v", exists, err)
	}
}

func TestCacheHelperWithoutClient(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	if cm.Sessions.Available() {
		t.Fatal("helper without client must report unavailable")
	}
	if err := cm.Sessions.SetString(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("writes degrade to no-op, got %v", err)
	}
	if _, err := cm.Sessions.Exists(ctx, "k"); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected ErrCacheNotAvailable, got %v", err)
	}
	if err := cm.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestCacheManagerHealthCheck(t *testing.T) {
	cm, mr := newTestManager(t)
	if err := cm.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}
	mr.Close()
	if err := cm.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected failure after redis shutdown")
	}
}
