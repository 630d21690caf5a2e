package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bloodcare/bloodcare/auth"
)

func TestCanonicalAuthority(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{name: "bare tag", tag: "ADMIN", want: "ROLE_ADMIN"},
		{name: "lowercase tag", tag: "admin", want: "ROLE_ADMIN"},
		{name: "already prefixed", tag: "ROLE_ADMIN", want: "ROLE_ADMIN"},
		{name: "prefixed lowercase", tag: "ROLE_staff", want: "ROLE_STAFF"},
		{name: "lowercase prefix", tag: "role_staff", want: "ROLE_STAFF"},
		{name: "mixed case prefix", tag: "Role_Admin", want: "ROLE_ADMIN"},
		{name: "surrounding whitespace", tag: "  member ", want: "ROLE_MEMBER"},
		{name: "empty", tag: "", want: ""},
		{name: "whitespace only", tag: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := auth.CanonicalAuthority(tt.tag)
			assert.Equal(t, tt.want, got)

			// canonicalization must be idempotent
			assert.Equal(t, got, auth.CanonicalAuthority(got))
		})
	}
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, auth.IsValidRole(auth.RoleAdmin))
	assert.True(t, auth.IsValidRole(auth.RoleStaff))
	assert.True(t, auth.IsValidRole(auth.RoleMember))
	assert.True(t, auth.IsValidRole("ROLE_ADMIN"))
	assert.True(t, auth.IsValidRole("member"))
	assert.False(t, auth.IsValidRole("SUPERUSER"))
	assert.False(t, auth.IsValidRole(""))
}

func TestAuthoritiesFor(t *testing.T) {
	assert.Equal(t, []string{"ROLE_STAFF"}, auth.AuthoritiesFor(auth.RoleStaff))
	assert.Nil(t, auth.AuthoritiesFor(""))
}
