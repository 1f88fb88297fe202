// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	customValidation "github.com/lsoftware/inventory/internal/validation"
)

// LoginRequest is the credentials body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 255),
		),
	)
}

// ToCredentials converts the request into domain credentials.
func (r *LoginRequest) ToCredentials() *authDomain.Credentials {
	return &authDomain.Credentials{
		Username: r.Username,
		Password: r.Password,
	}
}
