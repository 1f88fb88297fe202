// Package domain defines the authentication and authorization domain models.
// Identity tokens carry raw authority names; requests are authorized against
// permissions derived from them by prefixing RolePrefix.
package domain

// RolePrefix is prepended to every raw authority to form a Permission.
const RolePrefix = "ROLE_"

// AuthoritiesClaim is the token claim carrying the raw authority names.
const AuthoritiesClaim = "authorities"

// Permission is a granted authority as seen by authorization checks (e.g. "ROLE_ADMIN").
type Permission string

const (
	// PermissionAdmin grants user and role administration.
	PermissionAdmin Permission = RolePrefix + "ADMIN"

	// PermissionSupervisor grants inventory supervision.
	PermissionSupervisor Permission = RolePrefix + "SUPERVISOR"

	// PermissionUser is the baseline permission of inventory operators.
	PermissionUser Permission = RolePrefix + "USER"
)

// String returns the permission name.
func (p Permission) String() string {
	return string(p)
}
