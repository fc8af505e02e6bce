package translate

import (
	"context"
	"errors"
	"fmt"
)

// ErrorClass separates service failures that are worth retrying from
// those that would fail identically on every subsequent call.
type ErrorClass int

const (
	// ClassTransient covers network hiccups, rate limits, and 5xx
	// responses. Retried with backoff.
	ClassTransient ErrorClass = iota
	// ClassPermanent covers invalid credentials, authorization failures,
	// and malformed requests. Aborts the whole run.
	ClassPermanent
)

// ServiceError wraps a translation service failure with its class.
type ServiceError struct {
	Class ErrorClass
	Err   error
}

func (e *ServiceError) Error() string {
	if e.Class == ClassPermanent {
		return fmt.Sprintf("permanent service error: %v", e.Err)
	}
	return fmt.Sprintf("transient service error: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Transient wraps err as a retryable service error.
func Transient(err error) error {
	return &ServiceError{Class: ClassTransient, Err: err}
}

// Permanent wraps err as a non-retryable service error.
func Permanent(err error) error {
	return &ServiceError{Class: ClassPermanent, Err: err}
}

// IsPermanent reports whether err must abort the run instead of being
// retried. Context cancellation counts: retrying a cancelled call is
// pointless.
func IsPermanent(err error) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Class == ClassPermanent
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
