package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodcare/bloodcare/auth"
)

type testConfig struct{}

func (testConfig) GetSigningKey() string     { return string(testSigningKey) }
func (testConfig) GetSigningMethod() string  { return "HS256" }
func (testConfig) GetContextKey() string     { return "user" }
func (testConfig) GetTokenExpiration() int64 { return 3600000 }
func (testConfig) GetTokenLookup() string    { return "header:Authorization" }
func (testConfig) GetAuthScheme() string     { return "Bearer" }

func newTestAuther(t *testing.T) *auth.Auther {
	t.Helper()
	return auth.NewAuthenticator(newFakeStore(t, "12345678"), testConfig{})
}

func TestLoginSuccess(t *testing.T) {
	auther := newTestAuther(t)

	result := auther.Login(context.Background(), "member", "12345678")
	require.True(t, result.Succeeded())
	require.NotNil(t, result.Token)

	assert.Equal(t, "Login successful", result.Message)
	assert.Equal(t, "member", *result.Username)
	assert.Equal(t, auth.RoleMember, *result.Role)

	claims, err := auther.TokenService().Validate(*result.Token)
	require.NoError(t, err)
	assert.Equal(t, "member", claims.Subject())
}

func TestLoginRejections(t *testing.T) {
	auther := newTestAuther(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		identifier  string
		password    string
		wantMessage string
	}{
		{name: "missing credentials", identifier: "", password: "", wantMessage: "Username or password is missing"},
		{name: "unknown account", identifier: "ghost", password: "12345678", wantMessage: "User not found"},
		{name: "inactive account", identifier: "dormant", password: "12345678", wantMessage: "Account is not active"},
		{name: "wrong password", identifier: "member", password: "nope", wantMessage: "Password is incorrect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := auther.Login(ctx, tt.identifier, tt.password)
			assert.False(t, result.Succeeded())
			assert.Nil(t, result.Token)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestLogoutIsStateless(t *testing.T) {
	auther := newTestAuther(t)

	result := auther.Login(context.Background(), "member", "12345678")
	require.True(t, result.Succeeded())

	message := auther.Logout(*result.Token)
	assert.Equal(t, "logout successful", message)

	// logout does not revoke anything; the token stays valid until expiry
	assert.True(t, auther.Validate(*result.Token))
}

func TestValidate(t *testing.T) {
	auther := newTestAuther(t)

	result := auther.Login(context.Background(), "member", "12345678")
	require.True(t, result.Succeeded())

	assert.True(t, auther.Validate(*result.Token))
	assert.False(t, auther.Validate(""))
	assert.False(t, auther.Validate("not-a-token"))
}
