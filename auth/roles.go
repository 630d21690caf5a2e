package auth

import "strings"

// RoleTag is an account's canonical role string
type RoleTag = string

const (
	// RoleAdmin is the system administrator role
	RoleAdmin RoleTag = "ADMIN"
	// RoleStaff is the hospital staff role
	RoleStaff RoleTag = "STAFF"
	// RoleMember is the normal donor role
	RoleMember RoleTag = "MEMBER"
)

// AuthorityPrefix is prepended to role tags for authorization checks.
const AuthorityPrefix = "ROLE_"

// IsValidRole checks if the tag is one of the predefined roles
func IsValidRole(r RoleTag) bool {
	switch strings.ToUpper(strings.TrimPrefix(r, AuthorityPrefix)) {
	case RoleAdmin, RoleStaff, RoleMember:
		return true
	default:
		return false
	}
}

// CanonicalAuthority normalizes a role tag into its prefixed, uppercased
// authority form. Idempotent: CanonicalAuthority(CanonicalAuthority(x)) ==
// CanonicalAuthority(x).
func CanonicalAuthority(tag RoleTag) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	tag = strings.ToUpper(tag)
	return AuthorityPrefix + strings.TrimPrefix(tag, AuthorityPrefix)
}

// AuthoritiesFor derives the authority set granted by a role tag. The source
// system grants exactly one authority per account.
func AuthoritiesFor(tag RoleTag) []string {
	authority := CanonicalAuthority(tag)
	if authority == "" {
		return nil
	}
	return []string{authority}
}
