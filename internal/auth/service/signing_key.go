package service

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
)

// MinSigningKeyLength is the smallest accepted HMAC secret in bytes (256 bits).
const MinSigningKeyLength = 32

// SigningKey is the process-wide HMAC secret. It is built once at boot and
// never mutated, so it is safe to share across request goroutines.
type SigningKey struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// NewSigningKey copies secret into a new SigningKey.
// The HMAC variant follows the key size: HS512 from 64 bytes, HS384 from 48
// bytes, HS256 otherwise.
func NewSigningKey(secret []byte) (*SigningKey, error) {
	if len(secret) == 0 {
		return nil, authDomain.ErrSigningKeyMissing
	}
	if len(secret) < MinSigningKeyLength {
		return nil, authDomain.ErrSigningKeyTooShort
	}

	method := jwt.SigningMethodHS256
	switch {
	case len(secret) >= 64:
		method = jwt.SigningMethodHS512
	case len(secret) >= 48:
		method = jwt.SigningMethodHS384
	}

	return &SigningKey{
		secret: slices.Clone(secret),
		method: method,
	}, nil
}

// Bytes returns a copy of the secret.
func (k *SigningKey) Bytes() []byte {
	return slices.Clone(k.secret)
}

// Method returns the HMAC signing method used for new tokens.
func (k *SigningKey) Method() *jwt.SigningMethodHMAC {
	return k.method
}
