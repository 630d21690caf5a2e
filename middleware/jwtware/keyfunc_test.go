package jwtware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodcare/bloodcare/auth"
	"github.com/bloodcare/bloodcare/middleware/jwtware"
)

func signToken(t *testing.T, method jwt.SigningMethod, key any, kid, subject string, role auth.RoleTag, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserRole: role,
	}

	token := jwt.NewWithClaims(method, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}

	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestSigningKeyValidator(t *testing.T) {
	app := newAppWithConfig(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: "HS256", Key: testSigningKey},
	})

	token := signToken(t, jwt.SigningMethodHS256, testSigningKey, "", "member", auth.RoleMember, time.Hour)

	resp, body := doRequest(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "member:MEMBER", body)
}

func TestSigningKeyValidatorExpired(t *testing.T) {
	app := newAppWithConfig(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: "HS256", Key: testSigningKey},
	})

	token := signToken(t, jwt.SigningMethodHS256, testSigningKey, "", "member", auth.RoleMember, -time.Minute)

	resp, body := doRequest(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "session expired, please log in again")
}

func TestSigningKeyValidatorWrongKey(t *testing.T) {
	app := newAppWithConfig(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: "HS256", Key: testSigningKey},
	})

	token := signToken(t, jwt.SigningMethodHS256, []byte("another-signing-key-fedcba98765432"), "", "member", auth.RoleMember, time.Hour)

	resp, body := doRequest(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "invalid authentication token")
}

func TestSigningKeysByKid(t *testing.T) {
	secondary := []byte("another-signing-key-fedcba98765432")

	app := newAppWithConfig(jwtware.Config{
		SigningKeys: map[string]jwtware.SigningKey{
			"primary":   {JWTAlg: "HS256", Key: testSigningKey},
			"secondary": {JWTAlg: "HS256", Key: secondary},
		},
	})

	token := signToken(t, jwt.SigningMethodHS256, secondary, "secondary", "staff", auth.RoleStaff, time.Hour)

	resp, body := doRequest(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "staff:STAFF", body)

	// a kid outside the key set never validates
	token = signToken(t, jwt.SigningMethodHS256, secondary, "rogue", "staff", auth.RoleStaff, time.Hour)

	resp, body = doRequest(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "invalid authentication token")
}

func TestJWKSetURLValidator(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	set := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": "remote-key",
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		require.NoError(t, json.NewEncoder(w).Encode(set))
	}))
	defer srv.Close()

	app := newAppWithConfig(jwtware.Config{
		JWKSetURLs: []string{srv.URL},
	})

	token := signToken(t, jwt.SigningMethodRS256, key, "remote-key", "admin", auth.RoleAdmin, time.Hour)

	resp, body := doRequest(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin:ADMIN", body)

	// the claims-derived authorities drive the gates as usual
	resp, body = doRequest(t, app, "/admin", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin area", body)

	expired := signToken(t, jwt.SigningMethodRS256, key, "remote-key", "admin", auth.RoleAdmin, -time.Minute)

	resp, body = doRequest(t, app, "/whoami", expired)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "session expired, please log in again")
}
