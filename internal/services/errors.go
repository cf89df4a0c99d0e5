package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidStatus is returned when a status transition names a status
	// outside the canonical set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrCheckoutInit is returned when the payment provider refuses to
	// create a checkout session. The order is already persisted in pending
	// state when this happens.
	ErrCheckoutInit = errors.New("checkout initialization failed")

	// ErrBadWebhook is returned when a webhook payload is missing required
	// fields and cannot be recorded.
	ErrBadWebhook = errors.New("malformed webhook payload")
)

// ValidationError reports which request fields failed validation. It is
// raised before any store or network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
