package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFields means name, email or message is empty. Submitting in
	// that state does nothing.
	ErrMissingFields = errors.New("name, email and message are required")
	// ErrMissingToken blocks submission until the verification widget has
	// issued a token
	ErrMissingToken = errors.New("please complete the reCAPTCHA verification")
	// ErrTokenRejected means the verification service did not accept the token
	ErrTokenRejected = errors.New("verification token rejected")
	// ErrConfigMissing means one of the relay credentials is not set
	ErrConfigMissing = errors.New("email relay configuration missing")
	// ErrRelayFailed wraps every failure of the relay call itself
	ErrRelayFailed = errors.New("failed to send message")
	// ErrBusy means a submission from the same sender is still in flight
	ErrBusy = errors.New("a message is already being sent")
)

// RelayError is a rejection by the relay service
type RelayError struct {
	StatusCode int
	Body       string
}

func (e *RelayError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relay rejected message: status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay rejected message: status %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrRelayFailed
func (e *RelayError) Unwrap() error {
	return ErrRelayFailed
}
