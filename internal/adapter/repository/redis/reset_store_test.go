package redis

import (
	"context"
	"testing"
	"time"
)

func TestResetStore_TakeConsumesToken(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewResetStore(client)
	ctx := context.Background()

	if err := store.Create(ctx, "token-1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	taken, err := store.Take(ctx, "token-1")
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if !taken {
		t.Fatal("expected token to be taken")
	}

	taken, err = store.Take(ctx, "token-1")
	if err != nil {
		t.Fatalf("second take failed: %v", err)
	}
	if taken {
		t.Fatal("expected token to be consumed by the first take")
	}
}

func TestResetStore_TakeUnknownToken(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewResetStore(client)

	taken, err := store.Take(context.Background(), "never-created")
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if taken {
		t.Fatal("expected unknown token to not be taken")
	}
}

func TestResetStore_CancelDiscardsToken(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewResetStore(client)
	ctx := context.Background()

	if err := store.Create(ctx, "token-2"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cancelled, err := store.Cancel(ctx, "token-2")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !cancelled {
		t.Fatal("expected cancel to report the token existed")
	}

	taken, err := store.Take(ctx, "token-2")
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if taken {
		t.Fatal("expected cancelled token to be gone")
	}

	cancelled, err = store.Cancel(ctx, "token-2")
	if err != nil {
		t.Fatalf("second cancel failed: %v", err)
	}
	if cancelled {
		t.Fatal("expected second cancel to report an unknown token")
	}
}

func TestResetStore_TokensDoNotExpire(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewResetStore(client)
	ctx := context.Background()

	if err := store.Create(ctx, "token-3"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mr.FastForward(24 * time.Hour)

	taken, err := store.Take(ctx, "token-3")
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if !taken {
		t.Fatal("expected token to survive without expiry")
	}
}

func TestULIDGenerator_GeneratesUniqueTokens(t *testing.T) {
	gen := NewULIDGenerator()

	a := gen.Generate()
	b := gen.Generate()

	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("expected 26-char ULIDs, got %q and %q", a, b)
	}
	if a == b {
		t.Fatal("expected distinct tokens")
	}
}
