package domain

import (
	"github.com/lsoftware/inventory/internal/errors"
)

// Public messages of authentication failures.
const (
	MessageBadCredentials = "Bad credentials"
	MessageInvalidToken   = "Invalid Token"
)

// Authentication and authorization errors.
var (
	// ErrBadCredentials indicates an unknown user, a disabled user or a wrong password.
	// The cases are deliberately indistinguishable.
	ErrBadCredentials = errors.Wrap(errors.ErrForbidden, MessageBadCredentials)

	// ErrInvalidToken indicates a presented token failed verification.
	ErrInvalidToken = errors.Wrap(errors.ErrForbidden, MessageInvalidToken)

	// ErrMalformedRequestBody indicates the login body could not be parsed into credentials.
	ErrMalformedRequestBody = errors.Wrap(errors.ErrForbidden, "malformed request body")

	// ErrAccessDenied indicates the request principal lacks a required permission.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "Access is denied")

	// ErrSigningKeyMissing indicates no signing secret was configured.
	ErrSigningKeyMissing = errors.Wrap(errors.ErrInvalidInput, "signing key is missing")

	// ErrSigningKeyTooShort indicates the signing secret is below the HMAC minimum.
	ErrSigningKeyTooShort = errors.Wrap(errors.ErrInvalidInput, "signing key is too short")
)

// InvalidTokenReason classifies why a token failed verification.
// It is kept for logs and tests and never shown to clients.
type InvalidTokenReason string

const (
	// ReasonSignature means the signature did not verify with the current key.
	ReasonSignature InvalidTokenReason = "signature"

	// ReasonMalformed means the token or its claims could not be parsed.
	ReasonMalformed InvalidTokenReason = "malformed"

	// ReasonExpired means the current instant is at or past the expiry.
	ReasonExpired InvalidTokenReason = "expired"
)

// InvalidTokenError is returned by the claims codec for every decode failure.
// Its message is the same for all reasons; errors.Is matches ErrInvalidToken.
type InvalidTokenError struct {
	Reason InvalidTokenReason
	Err    error
}

// NewInvalidTokenError creates an InvalidTokenError for reason wrapping cause.
func NewInvalidTokenError(reason InvalidTokenReason, cause error) *InvalidTokenError {
	return &InvalidTokenError{Reason: reason, Err: cause}
}

// Error returns the uniform invalid token message.
func (e *InvalidTokenError) Error() string {
	return ErrInvalidToken.Error()
}

// Unwrap exposes both ErrInvalidToken and the underlying cause.
func (e *InvalidTokenError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidToken}
	}
	return []error{ErrInvalidToken, e.Err}
}
