package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/time/rate"
)

type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// ReadRetry is replaced at start from the retry section of the config.
var ReadRetry = RetryPolicy{Attempts: 3, Backoff: 100 * time.Millisecond}

// IsTransient reports whether err is a connection-level fault worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// RetryRead re-runs a read while the store reports a transient fault. It must
// never wrap a write: an insert may have landed before the fault surfaced.
func RetryRead(ctx context.Context, fn func() error) error {
	policy := ReadRetry
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	limiter := rate.NewLimiter(rate.Every(policy.Backoff), 1)

	var err error
	for attempt := 0; attempt < policy.Attempts; attempt++ {
		if waitErr := limiter.Wait(ctx); waitErr != nil {
			if err != nil {
				return err
			}
			return waitErr
		}
		err = fn()
		if !IsTransient(err) {
			return err
		}
	}
	return err
}
