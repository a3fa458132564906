package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"
)

func withPolicy(t *testing.T, p RetryPolicy) {
	t.Helper()
	prev := ReadRetry
	ReadRetry = p
	t.Cleanup(func() { ReadRetry = prev })
}

func TestRetryReadRetriesTransientFaults(t *testing.T) {
	withPolicy(t, RetryPolicy{Attempts: 3, Backoff: time.Millisecond})

	calls := 0
	err := RetryRead(context.Background(), func() error {
		calls++
		if calls < 3 {
			return driver.ErrBadConn
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryReadStopsOnPermanentError(t *testing.T) {
	withPolicy(t, RetryPolicy{Attempts: 5, Backoff: time.Millisecond})

	permanent := errors.New("record not found")
	calls := 0
	err := RetryRead(context.Background(), func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestRetryReadGivesUpAfterAttempts(t *testing.T) {
	withPolicy(t, RetryPolicy{Attempts: 2, Backoff: time.Millisecond})

	calls := 0
	err := RetryRead(context.Background(), func() error {
		calls++
		return driver.ErrBadConn
	})
	if !errors.Is(err, driver.ErrBadConn) {
		t.Fatalf("expected ErrBadConn, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
