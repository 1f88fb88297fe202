package domain

import (
	"time"
)

// Credentials are the username and password submitted to the login endpoint.
// They are never stored or logged.
type Credentials struct {
	Username string
	Password string
}

// Identity is an authenticated user as returned by an Authenticator.
// Authorities holds raw authority names without RolePrefix.
type Identity struct {
	Name        string
	Authorities []string
}

// ClaimSet is the decoded content of an identity token.
type ClaimSet struct {
	Subject     string
	Authorities []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// IssueTokenOutput contains a freshly signed token and its expiry instant.
type IssueTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}
