package domain

import (
	"github.com/lsoftware/inventory/internal/errors"
)

// Domain-specific errors for user and role operations.
var (
	// ErrUserNotFound indicates the requested user does not exist or was deleted.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a live user already has the same document or username.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrRoleNotFound indicates none of the requested roles exist.
	ErrRoleNotFound = errors.Wrap(errors.ErrInvalidInput, "user roles not found")

	// ErrRoleAlreadyExists indicates a role with the same name already exists.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")

	// ErrPasswordChangeNotPermitted indicates a user tried to change someone else's password.
	ErrPasswordChangeNotPermitted = errors.Wrap(errors.ErrForbidden, "password change not permitted")

	// ErrOldPasswordMismatch indicates the current password supplied on a password change is wrong.
	ErrOldPasswordMismatch = errors.Wrap(errors.ErrForbidden, "old password does not match")

	// ErrInvalidStatus indicates an unknown user status.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid user status")
)
