package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

func TestReportCache_SetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewReportCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "rendered report", 30*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	text, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if text != "rendered report" {
		t.Fatalf("expected cached text, got %q", text)
	}
}

func TestReportCache_GetMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewReportCache(client)

	_, err := cache.Get(context.Background())
	if err != redislib.Nil {
		t.Fatalf("expected redis.Nil on miss, got %v", err)
	}
}

func TestReportCache_Invalidate(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewReportCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "stale", 30*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	if _, err := cache.Get(ctx); err != redislib.Nil {
		t.Fatalf("expected miss after invalidate, got %v", err)
	}
}

func TestReportCache_Expiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewReportCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "short lived", time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx); err != redislib.Nil {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
}
