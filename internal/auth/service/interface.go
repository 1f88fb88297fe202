// Package service provides the technical services of the authentication pipeline:
// signing key material, the JWT claims codec, the authority mapper, password
// hashing and resolution of KMS-wrapped signing secrets.
package service

import (
	"context"
	"time"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
)

// ClaimsCodec converts between a claim set and a signed compact token.
type ClaimsCodec interface {
	// Encode signs a token for subject carrying the raw authorities.
	// The expiry is the UTC calendar date of issuedAt plus lifetimeDays, at midnight.
	// Returns the compact token and its expiry instant.
	Encode(subject string, authorities []string, issuedAt time.Time, lifetimeDays int) (string, time.Time, error)

	// Decode verifies the signature and expiry of token and returns its claims.
	// Every failure is an *authDomain.InvalidTokenError.
	Decode(token string) (*authDomain.ClaimSet, error)
}

// AuthorityMapper turns raw token authorities into permissions.
type AuthorityMapper interface {
	// Map prefixes every authority with authDomain.RolePrefix.
	// Duplicates collapse; an empty input yields an empty, non-nil result.
	Map(raw []string) []authDomain.Permission
}

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash returns an Argon2id PHC string for plain.
	Hash(plain string) (string, error)

	// Compare reports whether plain matches hashed. Argon2id and bcrypt hashes are accepted.
	Compare(plain, hashed string) bool
}

// SecretResolver yields the signing secret bytes from configuration.
type SecretResolver interface {
	// Resolve returns secret unchanged when keyURI is empty. Otherwise secret is
	// base64 ciphertext decrypted through the keeper at keyURI.
	Resolve(ctx context.Context, secret, keyURI string) ([]byte, error)
}
