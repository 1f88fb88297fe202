package service

import (
	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
)

type authorityMapper struct{}

// NewAuthorityMapper creates the default AuthorityMapper.
func NewAuthorityMapper() AuthorityMapper {
	return &authorityMapper{}
}

// Map prefixes each raw authority, keeping first-seen order.
func (m *authorityMapper) Map(raw []string) []authDomain.Permission {
	perms := make([]authDomain.Permission, 0, len(raw))
	seen := make(map[authDomain.Permission]struct{}, len(raw))

	for _, authority := range raw {
		perm := authDomain.Permission(authDomain.RolePrefix + authority)
		if _, ok := seen[perm]; ok {
			continue
		}
		seen[perm] = struct{}{}
		perms = append(perms, perm)
	}

	return perms
}
