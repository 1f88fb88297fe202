// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/lsoftware/inventory/internal/validation"
)

// CreateUserRequest is the body of POST /api/v1/users.
// Roles holds role IDs.
type CreateUserRequest struct {
	Document string   `json:"document"`
	Name     string   `json:"name"`
	LastName string   `json:"lastName"`
	Username string   `json:"username"`
	Password string   `json:"password"` //nolint:gosec // request payload
	Roles    []string `json:"roles"`
}

// Validate checks the request shape; business rules are enforced by the use case.
func (r *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Roles,
			validation.Required.Error("at least one role is required"),
			validation.Each(validation.Required, appValidation.UUID),
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateUserRequest is the body of PUT /api/v1/users/:id.
type UpdateUserRequest struct {
	Name     string   `json:"name"`
	LastName string   `json:"lastName"`
	Status   *int     `json:"status"`
	Roles    []string `json:"roles"`
}

// Validate checks the request shape.
func (r *UpdateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.NotNil.Error("status is required"),
		),
		validation.Field(&r.Roles,
			validation.Required.Error("at least one role is required"),
			validation.Each(validation.Required, appValidation.UUID),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ChangePasswordRequest is the body of PUT /api/v1/users/changePassword.
type ChangePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"oldPassword"` //nolint:gosec // request payload
	NewPassword string `json:"newPassword"` //nolint:gosec // request payload
}

// Validate checks the request shape.
func (r *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, appValidation.NotBlank),
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
	return appValidation.WrapValidationError(err)
}

// CreateRoleRequest is the body of POST /api/v1/roles.
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the request shape.
func (r *CreateRoleRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Description, validation.Length(0, 255)),
	)
	return appValidation.WrapValidationError(err)
}
