package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/loader"
)

const (
	// retryBaseInterval is the first retry delay after a failed refresh.
	retryBaseInterval = 2 * time.Second

	// maxBackoff caps the retry delay after consecutive failures.
	maxBackoff = 30 * time.Second

	// refreshTimeout bounds one background fetch.
	refreshTimeout = 15 * time.Second
)

// LoadFunc performs one load; (*loader.Loader).Load satisfies it.
type LoadFunc func(ctx context.Context) (loader.Result, error)

// DeliverFunc receives every load outcome.
type DeliverFunc func(loader.Result, error)

// StartPoller launches a background goroutine that reloads the repository
// list every interval and hands each outcome to deliver. The first load
// happens one interval after start. A failure (including a load that fell
// back to the cache) switches to exponential backoff until a load succeeds.
// The returned channel is closed once the goroutine has exited.
func StartPoller(ctx context.Context, load LoadFunc, deliver DeliverFunc, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)

		timer := time.NewTimer(interval)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			res, err := refresh(ctx, load)
			if ctx.Err() != nil {
				return
			}
			deliver(res, err)

			cause := err
			if cause == nil {
				cause = res.Err
			}
			if cause != nil {
				failures++
				logger.Warn("background refresh failed", zap.Int("failures", failures), zap.Error(cause))
			} else {
				failures = 0
			}
			timer.Reset(nextDelay(interval, failures, cause, time.Now()))
		}
	}()
	return done
}

func refresh(ctx context.Context, load LoadFunc) (loader.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()
	return load(ctx)
}

// nextDelay picks the wait before the next refresh. A rate limit with a
// known reset waits for the reset; other failures back off but never wait
// longer than the regular interval.
func nextDelay(interval time.Duration, failures int, cause error, now time.Time) time.Duration {
	if failures <= 0 {
		return interval
	}
	var rl *github.RateLimitError
	if errors.As(cause, &rl) && rl.Reset.After(now) {
		return rl.Reset.Sub(now)
	}
	return min(calculateBackoff(failures, retryBaseInterval), interval)
}

// calculateBackoff doubles base once per failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		return maxBackoff
	}
	return min(base<<failures, maxBackoff)
}
