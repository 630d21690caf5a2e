package config

import (
	"strconv"

	"github.com/bloodcare/bloodcare/auth"
)

const (
	signingKeyVar = "JWT_SIGNING_KEY"
	tokenTTLVar   = "JWT_EXPIRATION_MS"
)

// defaultTokenExpirationMs is one day, expressed in milliseconds.
const defaultTokenExpirationMs int64 = 86400000

type Security struct{}

var _ auth.Config = Security{}

func (Security) GetSigningKey() string {
	return GetEnv(signingKeyVar, "supersecuresecretkeyforjwt1234567890!")
}

func (Security) GetSigningMethod() string {
	return "HS256"
}

func (Security) GetContextKey() string {
	return "user"
}

// GetTokenExpiration returns the session lifetime in milliseconds.
func (Security) GetTokenExpiration() int64 {
	raw := GetEnv(tokenTTLVar, "")
	if raw == "" {
		return defaultTokenExpirationMs
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return defaultTokenExpirationMs
	}
	return ms
}

func (Security) GetTokenLookup() string {
	return "header:Authorization"
}

func (Security) GetAuthScheme() string {
	return "Bearer"
}
