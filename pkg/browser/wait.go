package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPollInterval is used by WaitUntil when interval is zero.
const DefaultPollInterval = 100 * time.Millisecond

// WaitUntil polls cond until it returns true, returns an error, or timeout
// elapses. Expiry yields an error wrapping ErrTimeout. A non-positive
// timeout evaluates cond exactly once.
func WaitUntil(ctx context.Context, timeout, interval time.Duration, cond func(context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	deadline := time.Now().Add(timeout)

	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		if interval > remaining {
			interval = remaining
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
			}
			return ctx.Err()
		case <-timer.C:
		}
	}
}
