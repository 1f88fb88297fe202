package domain

import (
	"slices"
)

// Principal is the authenticated identity of a single request.
// It is built from a verified token and lives only in that request's context.
type Principal struct {
	Name        string
	Authorities []Permission
}

// HasAuthority reports whether the principal was granted perm.
func (p *Principal) HasAuthority(perm Permission) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Authorities, perm)
}

// HasAnyAuthority reports whether the principal was granted at least one of perms.
// An empty perms list is satisfied by any non-nil principal.
func (p *Principal) HasAnyAuthority(perms ...Permission) bool {
	if p == nil {
		return false
	}
	if len(perms) == 0 {
		return true
	}
	for _, perm := range perms {
		if p.HasAuthority(perm) {
			return true
		}
	}
	return false
}
