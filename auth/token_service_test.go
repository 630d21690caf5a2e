package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodcare/bloodcare/auth"
)

var testSigningKey = []byte("test-signing-key-0123456789abcdef")

func newTestTokenService(ttl time.Duration) auth.TokenService {
	return auth.NewTokenService(testSigningKey, ttl, nil)
}

func TestTokenServiceGenerate(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	token, err := ts.Generate("member", auth.RoleMember)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "member", claims.Subject())
	assert.Equal(t, auth.RoleMember, claims.Role())
	assert.Equal(t, []string{"ROLE_MEMBER"}, claims.Authorities())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), 5*time.Second)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt(), 5*time.Second)
}

func TestTokenServiceGenerateRejectsEmptySubject(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	_, err := ts.Generate("", auth.RoleMember)
	assert.Error(t, err)
}

func TestTokenServiceGenerateRejectsMissingKey(t *testing.T) {
	ts := auth.NewTokenService(nil, time.Hour, nil)

	_, err := ts.Generate("member", auth.RoleMember)
	assert.Error(t, err)
}

func TestTokenServiceValidateExpired(t *testing.T) {
	ts := newTestTokenService(-time.Minute)

	token, err := ts.Generate("member", auth.RoleMember)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
	assert.True(t, auth.IsTokenExpiredError(err))
	assert.True(t, ts.IsExpired(token))
}

func TestTokenServiceValidateTampered(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	token, err := ts.Generate("member", auth.RoleMember)
	require.NoError(t, err)

	// flip the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[2] = strings.Repeat("A", len(parts[2]))
	tampered := strings.Join(parts, ".")

	_, err = ts.Validate(tampered)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	assert.True(t, auth.IsMalformedError(err))
}

func TestTokenServiceValidateGarbage(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a token", token: "not-a-token"},
		{name: "two segments", token: "aaaa.bbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Validate(tt.token)
			assert.ErrorIs(t, err, auth.ErrTokenMalformed)
		})
	}
}

func TestTokenServiceExpiredBeatsWrongKeyNever(t *testing.T) {
	// a token that is both expired and signed with another key must read
	// as malformed, not expired
	other := auth.NewTokenService([]byte("a-different-signing-key-000000000"), -time.Minute, nil)
	token, err := other.Generate("member", auth.RoleMember)
	if err != nil {
		t.Fatal(err)
	}

	ts := newTestTokenService(time.Hour)
	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestTokenServiceSubjectOf(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	token, err := ts.Generate("admin", auth.RoleAdmin)
	require.NoError(t, err)

	subject, err := ts.SubjectOf(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	_, err = ts.SubjectOf("garbage")
	assert.Error(t, err)
}

func TestTokenServiceIsExpired(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	token, err := ts.Generate("member", auth.RoleMember)
	require.NoError(t, err)

	assert.False(t, ts.IsExpired(token))
	assert.True(t, ts.IsExpired("garbage"))
}
