package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityContextRoundtrip(t *testing.T) {
	sc := &SecurityContext{
		AccountID:   "77b57659-3dfd-4b44-a59d-b4d1ee84b2cf",
		AccountCode: "AC-20240131120000-001",
		Subject:     "member",
		Role:        RoleMember,
		Authorities: []string{"ROLE_MEMBER"},
	}

	ctx := WithSecurityContext(context.Background(), sc)

	got, ok := SecurityContextFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, sc, got)
}

func TestSecurityContextFromEmpty(t *testing.T) {
	_, ok := SecurityContextFrom(context.Background())
	assert.False(t, ok)

	// wrong type under the key must not be returned
	ctx := context.WithValue(context.Background(), securityCtxKey, "not-a-context")
	_, ok = SecurityContextFrom(ctx)
	assert.False(t, ok)
}

func TestHasAuthority(t *testing.T) {
	sc := &SecurityContext{
		Subject:     "staff",
		Role:        RoleStaff,
		Authorities: []string{"ROLE_STAFF"},
	}

	tests := []struct {
		name     string
		required string
		want     bool
	}{
		{name: "canonical match", required: "ROLE_STAFF", want: true},
		{name: "bare tag", required: "STAFF", want: true},
		{name: "lowercase", required: "staff", want: true},
		{name: "different role", required: "ROLE_ADMIN", want: false},
		{name: "empty requirement", required: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sc.HasAuthority(tt.required))
		})
	}
}

func TestHasAuthorityNilContext(t *testing.T) {
	var sc *SecurityContext
	assert.False(t, sc.HasAuthority("ROLE_ADMIN"))
}

func TestNewSecurityContext(t *testing.T) {
	account := &VerifiedAccount{record: &CredentialRecord{
		ID:          "d9c1c2ff-7a64-49b5-81b2-6b38c5a75b11",
		AccountCode: "AC-20240131120000-002",
		Username:    "admin",
		Email:       "admin@system.local",
		Role:        RoleAdmin,
	}}

	sc := NewSecurityContext(account)

	assert.Equal(t, "admin", sc.Subject)
	assert.Equal(t, RoleAdmin, sc.Role)
	assert.Equal(t, []string{"ROLE_ADMIN"}, sc.Authorities)
	assert.Equal(t, "AC-20240131120000-002", sc.AccountCode)
}
