package translate

import (
	"context"
	"time"
)

// Policy is the retry/backoff schedule injected into the driver. The
// Sleep hook exists so tests can substitute a deterministic fake clock.
type Policy struct {
	// MaxAttempts is the total attempt ceiling, first try included.
	MaxAttempts int
	// InitialBackoff is the wait after the first failed attempt; each
	// further attempt doubles it, capped at MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Sleep waits for d or until ctx is done. Nil selects a real sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy matches the run defaults: three attempts, one second
// base, thirty second cap.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// Backoff returns the wait before the given 1-based retry attempt.
func (p Policy) Backoff(attempt int) time.Duration {
	d := p.InitialBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn up to MaxAttempts times, backing off between transient
// failures. Permanent errors and context cancellation stop immediately.
// Returns the number of attempts made and the last error, if any.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) (int, error) {
	max := p.MaxAttempts
	if max < 1 {
		max = 1
	}

	var err error
	for attempt := 1; attempt <= max; attempt++ {
		err = fn(ctx)
		if err == nil {
			return attempt, nil
		}
		if IsPermanent(err) {
			return attempt, err
		}
		if attempt == max {
			return attempt, err
		}
		if serr := p.sleep(ctx, p.Backoff(attempt)); serr != nil {
			return attempt, serr
		}
	}
	return max, err
}
