package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
)

// breakerTranslator wraps a provider with a circuit breaker. A service
// that fails several calls in a row is almost certainly down or
// misconfigured for the whole run; once the breaker opens, the failure is
// reported as permanent so the run aborts instead of burning the retry
// budget on every remaining entry.
type breakerTranslator struct {
	inner Translator
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps t with the run's circuit breaker.
func WithBreaker(t Translator) Translator {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        t.Name(),
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &breakerTranslator{inner: t, cb: cb}
}

func (b *breakerTranslator) Name() string { return b.inner.Name() }

func (b *breakerTranslator) Translate(ctx context.Context, text string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", Permanent(fmt.Errorf("translation service unavailable: %w", err))
		}
		return "", err
	}
	return out.(string), nil
}
