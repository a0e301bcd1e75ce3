package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference marks a checkout request whose reference does not
	// resolve to the expected payment-request -> sales-order chain.
	ErrInvalidReference = errors.New("invalid checkout reference")

	// ErrUnknownToken marks a confirmation for a token this service never issued.
	ErrUnknownToken = errors.New("unknown checkout token")
)

// UnsupportedCurrencyError is returned before any provider call is made.
type UnsupportedCurrencyError struct {
	Currency string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("currency %q is not supported by this gateway", e.Currency)
}

// ProviderUnavailableError wraps a failed remote provider call. No retry is
// attempted; the caller decides what to do.
type ProviderUnavailableError struct {
	Op  string
	Err error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("payment provider unavailable during %s: %v", e.Op, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }
