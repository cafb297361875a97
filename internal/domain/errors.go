package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for the payment and withdrawal flows. Handlers map these to
// HTTP statuses; services return them wrapped with context.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient store balance")
	ErrLimitExceeded     = errors.New("daily withdrawal limit reached")

	// ErrDuplicateEvent marks a webhook whose external reference was already
	// applied. Callers must treat it as success so the gateway stops retrying.
	ErrDuplicateEvent = errors.New("duplicate event")
)

// GatewayError wraps a failed or timed-out Paystack call. It is retryable
// from the caller's perspective; no local state was mutated.
type GatewayError struct {
	Operation string
	Status    int
	Message   string
	Err       error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("paystack %s failed: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("paystack %s failed", e.Operation)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsGatewayError reports whether err is (or wraps) a GatewayError.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
