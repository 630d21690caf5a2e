package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService encodes and decodes signed session tokens
type TokenService interface {
	Generate(subject string, role RoleTag) (string, error)
	Validate(tokenString string) (*JWTClaims, error)
	SubjectOf(tokenString string) (string, error)
	IsExpired(tokenString string) bool
}

// TokenServiceImpl implements the TokenService interface. The signing key is
// set once at construction and read concurrently without locking.
type TokenServiceImpl struct {
	signingKey []byte
	ttl        time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, ttl time.Duration, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		ttl:        ttl,
		logger:     logger,
	}
}

// Generate creates a signed JWT for the given subject. Expiry is strictly
// issuedAt + ttl.
func (ts *TokenServiceImpl) Generate(subject string, role RoleTag) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty", errors.CategoryInternal)
	}

	if len(ts.signingKey) == 0 {
		return "", errors.New("token signing key is not configured", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		UserRole: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and verifies a token string, returning structured claims.
// Expired is reported only when the signature itself verified; everything
// else is malformed.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, ErrTokenMalformed
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode claims")
	return nil, ErrTokenMalformed
}

// SubjectOf extracts the subject of a verified token
func (ts *TokenServiceImpl) SubjectOf(tokenString string) (string, error) {
	claims, err := ts.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject(), nil
}

// IsExpired reports whether a token is past its expiry. Tokens that fail to
// verify are treated as expired.
func (ts *TokenServiceImpl) IsExpired(tokenString string) bool {
	claims, err := ts.Validate(tokenString)
	if err != nil {
		return true
	}
	return !claims.Expires().After(time.Now())
}
