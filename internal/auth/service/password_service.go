package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/lsoftware/inventory/internal/errors"
)

// bcryptPrefixes identify password hashes imported from the legacy user store.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordService hashes new passwords with Argon2id and still verifies bcrypt hashes.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService using the interactive Argon2id policy.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordService{hasher: hasher}, nil
}

// Hash hashes plain using Argon2id.
func (s *passwordService) Hash(plain string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// Compare verifies plain against hashed in constant time.
func (s *passwordService) Compare(plain, hashed string) bool {
	if hashed == "" {
		return false
	}

	if isBcryptHash(hashed) {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
	}

	ok, err := s.hasher.Verify([]byte(plain), hashed)
	if err != nil {
		return false
	}
	return ok
}

func isBcryptHash(hashed string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hashed, prefix) {
			return true
		}
	}
	return false
}
