package inference

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// FailureClass separates errors the retry policy may recover from errors
// that must surface immediately.
type FailureClass string

const (
	// ClassTransient covers timeouts, rate limits, 5xx responses and network
	// faults. Eligible for retry.
	ClassTransient FailureClass = "transient"
	// ClassPermanent covers malformed requests, authentication failures,
	// content rejection and structurally invalid responses. Never retried.
	ClassPermanent FailureClass = "permanent"
)

// CallError is the classified failure of one inference call. Status carries
// the HTTP-equivalent status code when one exists.
type CallError struct {
	Status  int
	Class   FailureClass
	Message string
	Err     error
}

func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("inference call failed (%s, status %d): %s", e.Class, e.Status, e.Message)
	}
	return fmt.Sprintf("inference call failed (%s): %s", e.Class, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Transient reports whether the retry policy may attempt the call again.
func (e *CallError) Transient() bool {
	return e.Class == ClassTransient
}

// NewTransient builds a retryable call error.
func NewTransient(status int, format string, args ...any) *CallError {
	return &CallError{Status: status, Class: ClassTransient, Message: fmt.Sprintf(format, args...)}
}

// NewPermanent builds a non-retryable call error.
func NewPermanent(status int, format string, args ...any) *CallError {
	return &CallError{Status: status, Class: ClassPermanent, Message: fmt.Sprintf(format, args...)}
}

// ClassifyStatus maps an HTTP status code to a failure class. 429 and all
// 5xx codes are transient; everything else in the error range is permanent.
func ClassifyStatus(status int) FailureClass {
	if status == http.StatusTooManyRequests || status >= 500 {
		return ClassTransient
	}
	return ClassPermanent
}

// ClassifyTransportError wraps a transport-level failure. Context deadlines
// and network errors count as transient; cancellation propagates unchanged
// semantics but is not worth retrying either way, so it stays permanent.
func ClassifyTransportError(err error) *CallError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &CallError{Class: ClassTransient, Message: "request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &CallError{Class: ClassPermanent, Message: "request cancelled", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &CallError{Class: ClassTransient, Message: netErr.Error(), Err: err}
	}
	return &CallError{Class: ClassTransient, Message: err.Error(), Err: err}
}

// IsTransient reports whether err carries a transient classification.
// Unclassified errors are treated as permanent.
func IsTransient(err error) bool {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Transient()
	}
	return false
}
