package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrRateLimited indicates an upstream service rejected the call because of
// rate limiting. Callers surface this as a distinct user-visible notice.
var ErrRateLimited = errors.New("upstream service rate limited")

// ErrContentFiltered indicates an upstream AI service rejected the prompt
// because of its content policy.
var ErrContentFiltered = errors.New("upstream service rejected prompt content")

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// MalformedEventError signals that an inbound webhook body could not be
// parsed into an event. It is fatal for the request and must not trigger
// retry-amplifying side effects.
type MalformedEventError struct {
	Reason string
	Err    error
}

func (e *MalformedEventError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed event: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed event: %s", e.Reason)
}

func (e *MalformedEventError) Unwrap() error {
	return e.Err
}

// NewMalformedEventError wraps a parse failure with context
func NewMalformedEventError(reason string, err error) *MalformedEventError {
	return &MalformedEventError{Reason: reason, Err: err}
}

// IsMalformedEventError checks if an error is a malformed event error
func IsMalformedEventError(err error) bool {
	var target *MalformedEventError
	return errors.As(err, &target)
}

// DeliveryError carries the status and body of a rejected outbound Discord
// REST call. It is logged and may be degraded to a plain-text notice, but
// never crashes the request.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("discord delivery failed with status %d: %s", e.StatusCode, e.Body)
}

// IsDeliveryError checks if an error is a delivery error
func IsDeliveryError(err error) bool {
	var target *DeliveryError
	return errors.As(err, &target)
}
