package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Gmail sender service
var (
	// Authorization flow errors
	ErrStateMismatch  = errors.New("state mismatch")
	ErrNoPendingState = errors.New("no pending authorization state")
	ErrProviderError  = errors.New("provider reported an authorization error")
	ErrMissingCode    = errors.New("missing authorization code")

	// Credential errors
	ErrNoCredential = errors.New("no credential in session")

	// Revocation errors
	ErrRevocationTransport = errors.New("revocation request failed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Send errors
	ErrSendRejected = errors.New("send rejected by provider")

	// Rate limit errors
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
