package testutil

import (
	"context"
	"sync"
	"time"
)

// StubTranslator returns canned translations and records every call.
// It implements the translate.Translator interface.
type StubTranslator struct {
	mu sync.Mutex

	// Responses maps source text to the canned translation. Missing
	// entries are answered with "[xx] " + source.
	Responses map[string]string

	// Errors maps source text to an error returned instead of a
	// translation. The error is returned on every call for that text
	// unless FailuresPerText limits it.
	Errors map[string]error

	// FailuresPerText, when > 0, makes each text in Errors fail only
	// that many times before succeeding.
	FailuresPerText int

	Calls    []string
	failures map[string]int
}

// Translate returns the canned response for text.
func (s *StubTranslator) Translate(_ context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, text)

	if err, ok := s.Errors[text]; ok {
		if s.FailuresPerText <= 0 {
			return "", err
		}
		if s.failures == nil {
			s.failures = make(map[string]int)
		}
		if s.failures[text] < s.FailuresPerText {
			s.failures[text]++
			return "", err
		}
	}

	if out, ok := s.Responses[text]; ok {
		return out, nil
	}
	return "[xx] " + text, nil
}

// Name identifies the stub in breaker settings and cache keys.
func (s *StubTranslator) Name() string { return "stub" }

// CallCount returns how many times Translate was invoked.
func (s *StubTranslator) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// SleepRecorder is an injectable sleep function that records requested
// delays instead of waiting.
type SleepRecorder struct {
	mu     sync.Mutex
	Delays []time.Duration
}

// Sleep records the delay and returns immediately unless ctx is done.
func (r *SleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.Delays = append(r.Delays, d)
	r.mu.Unlock()
	return ctx.Err()
}
