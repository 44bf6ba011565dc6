package redis

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "summary:clinic", `{"total":100}`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	value, err := cache.Get(ctx, "summary:clinic")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `{"total":100}` {
		t.Fatalf("expected stored value, got %q", value)
	}
}

func TestCacheGetMissingKey(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)

	value, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected no error on miss, got %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value on miss, got %q", value)
	}
}

func TestCacheDelete(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "summary:cashflow", "rows", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Delete(ctx, "summary:cashflow"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	value, err := cache.Get(ctx, "summary:cashflow")
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if value != "" {
		t.Fatalf("expected key to be gone, got %q", value)
	}
}

func TestCacheTTLExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "ephemeral", "v", 30*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(time.Minute)

	value, err := cache.Get(ctx, "ephemeral")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "" {
		t.Fatalf("expected expired key to be gone, got %q", value)
	}
}
