package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	c := New()

	assert.Equal(t, ":8080", c.GetPort())
	assert.Equal(t, "Blood Donation Service", c.GetAppName())
	assert.Equal(t, "development", c.GetEnv())
	assert.Equal(t, "HS256", c.GetSigningMethod())
	assert.Equal(t, "user", c.GetContextKey())
	assert.Equal(t, int64(86400000), c.GetTokenExpiration())
	assert.Equal(t, "header:Authorization", c.GetTokenLookup())
	assert.Equal(t, "Bearer", c.GetAuthScheme())
	assert.NotEmpty(t, c.GetSigningKey())
	assert.NotEmpty(t, c.GetDatabaseDSN())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRATION_MS", "60000")

	c := New()

	assert.Equal(t, ":9090", c.GetPort())
	assert.Equal(t, int64(60000), c.GetTokenExpiration())
}

func TestTokenExpirationRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_MS", "not-a-number")
	c := New()
	assert.Equal(t, int64(86400000), c.GetTokenExpiration())

	t.Setenv("JWT_EXPIRATION_MS", "-5")
	assert.Equal(t, int64(86400000), c.GetTokenExpiration())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SOME_TEST_VAR", "value")
	assert.Equal(t, "value", GetEnv("SOME_TEST_VAR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SOME_UNSET_VAR", "fallback"))
}
