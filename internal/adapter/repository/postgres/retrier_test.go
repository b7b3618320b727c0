package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func testRetrier() *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: time.Millisecond,
		maxInterval:     5 * time.Millisecond,
		maxElapsedTime:  time.Second,
		logger:          zerolog.Nop(),
	}
}

func TestRetrier_PermanentErrorNotRetried(t *testing.T) {
	t.Parallel()

	calls := 0
	permanent := errors.New("constraint violation")

	err := testRetrier().Retry(context.Background(), func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Fatalf("expected the permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetrier_SerializationFailureRetried(t *testing.T) {
	t.Parallel()

	calls := 0
	err := testRetrier().Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: pgErrSerializationFailure}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetrier_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	err := testRetrier().Retry(context.Background(), func() error {
		calls++
		return &pgconn.PgError{Code: pgErrDeadlock}
	})

	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if calls != 4 { // initial attempt + 3 retries
		t.Fatalf("expected 4 calls, got %d", calls)
	}
}
