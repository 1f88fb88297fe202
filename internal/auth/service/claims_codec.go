package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	apperrors "github.com/lsoftware/inventory/internal/errors"
)

// tokenClaims is the JSON shape of an identity token payload.
// Authorities is a pointer so an absent claim can be told apart from an empty one.
type tokenClaims struct {
	Authorities *[]string `json:"authorities"`
	jwt.RegisteredClaims
}

// jwtClaimsCodec implements ClaimsCodec with HMAC-signed JWTs.
type jwtClaimsCodec struct {
	key    *SigningKey
	now    func() time.Time
	parser *jwt.Parser
}

// NewClaimsCodec creates a ClaimsCodec bound to key.
// clock supplies the instant used for expiry checks; nil means time.Now.
func NewClaimsCodec(key *SigningKey, clock func() time.Time) ClaimsCodec {
	if clock == nil {
		clock = time.Now
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(clock),
	)

	return &jwtClaimsCodec{
		key:    key,
		now:    clock,
		parser: parser,
	}
}

// Encode signs a new token. Authorities are written as given, without RolePrefix.
func (c *jwtClaimsCodec) Encode(
	subject string,
	authorities []string,
	issuedAt time.Time,
	lifetimeDays int,
) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is required")
	}
	if lifetimeDays < 1 {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "token lifetime must be at least one day")
	}

	if authorities == nil {
		authorities = []string{}
	}
	expiresAt := ExpiryFor(issuedAt, lifetimeDays)

	claims := &tokenClaims{
		Authorities: &authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(c.key.Method(), claims).SignedString(c.key.Bytes())
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return signed, expiresAt, nil
}

// Decode verifies token and extracts its claim set.
func (c *jwtClaimsCodec) Decode(token string) (*authDomain.ClaimSet, error) {
	claims := &tokenClaims{}

	_, err := c.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.key.Bytes(), nil
	})
	if err != nil {
		return nil, authDomain.NewInvalidTokenError(classifyParseError(err), err)
	}

	if claims.Subject == "" {
		return nil, authDomain.NewInvalidTokenError(
			authDomain.ReasonMalformed,
			errors.New("token subject is missing"),
		)
	}
	if claims.Authorities == nil {
		return nil, authDomain.NewInvalidTokenError(
			authDomain.ReasonMalformed,
			fmt.Errorf("token claim %q is missing", authDomain.AuthoritiesClaim),
		)
	}

	claimSet := &authDomain.ClaimSet{
		Subject:     claims.Subject,
		Authorities: *claims.Authorities,
		ExpiresAt:   claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		claimSet.IssuedAt = claims.IssuedAt.Time
	}

	return claimSet, nil
}

// classifyParseError maps a jwt parser error to an invalid token reason.
// The parser verifies the signature before the claims, so a forged expired
// token is reported as a signature failure.
func classifyParseError(err error) authDomain.InvalidTokenReason {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return authDomain.ReasonSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return authDomain.ReasonExpired
	default:
		return authDomain.ReasonMalformed
	}
}

// ExpiryFor returns midnight UTC of the calendar day lifetimeDays after issuedAt.
func ExpiryFor(issuedAt time.Time, lifetimeDays int) time.Time {
	year, month, day := issuedAt.UTC().Date()
	return time.Date(year, month, day+lifetimeDays, 0, 0, 0, 0, time.UTC)
}
