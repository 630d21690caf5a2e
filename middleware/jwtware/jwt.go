package jwtware

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bloodcare/bloodcare/auth"
)

// TokenValidator verifies a raw token string and returns structured claims
type TokenValidator interface {
	Validate(tokenString string) (*auth.JWTClaims, error)
}

// AccountResolver rebuilds the security context for a token subject. It is
// the only I/O-bound step of the pipeline and runs once per authenticated
// request.
type AccountResolver func(ctx context.Context, subject string) (*auth.SecurityContext, error)

type Config struct {
	// Filter skips the middleware entirely when it returns true
	Filter func(*fiber.Ctx) bool

	SuccessHandler fiber.Handler

	// ErrorHandler receives decode and resolution failures. Defaults to
	// re-raising the error so the app-level error handler translates it.
	ErrorHandler fiber.ErrorHandler

	SigningKey  SigningKey
	SigningKeys map[string]SigningKey
	JWKSetURLs  []string
	KeyFunc     jwt.Keyfunc

	// ContextKey is the Locals key the decoded claims are stored under
	ContextKey string
	// TokenLookup is a comma-separated list of "<source>:<name>" pairs,
	// e.g. "header:Authorization,query:auth_token"
	TokenLookup string
	AuthScheme  string

	// TokenValidator is required for token validation. When nil, a local
	// validator is built from the configured keys.
	TokenValidator TokenValidator

	// AccountResolver installs the per-request security context after a
	// token validates. When nil, a context is built from claims alone.
	AccountResolver AccountResolver
}

type SigningKey struct {
	JWTAlg string
	Key    any
}

// New returns the request authenticator middleware. It runs once per
// request ahead of business handlers: requests without a bearer token pass
// through unauthenticated, decode failures short-circuit, and valid tokens
// install the request-scoped security context.
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, cfg.getExtractors())
		if err != nil || raw == "" {
			// absence is legal: many endpoints are public
			return c.Next()
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		// idempotence guard: never overwrite a context already installed
		// for this request
		if _, ok := auth.SecurityContextFrom(c.UserContext()); ok {
			return cfg.SuccessHandler(c)
		}

		sc, err := cfg.resolveContext(c.UserContext(), claims)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.SetUserContext(auth.WithSecurityContext(c.UserContext(), sc))

		return cfg.SuccessHandler(c)
	}
}

// RequireAuthority is the declarative per-route authorization gate. It runs
// after the authenticator installed (or skipped) the security context and
// rejects with 403 before the handler body when the required authority is
// missing.
func RequireAuthority(required string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc, ok := auth.SecurityContextFrom(c.UserContext())
		if !ok || !sc.HasAuthority(required) {
			return auth.ErrInsufficientAuthority
		}
		return c.Next()
	}
}

// RequireAuthenticated gates routes that need a caller identity but no
// particular role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := auth.SecurityContextFrom(c.UserContext()); !ok {
			return auth.ErrInsufficientAuthority
		}
		return c.Next()
	}
}

func (cfg *Config) resolveContext(ctx context.Context, claims *auth.JWTClaims) (*auth.SecurityContext, error) {
	if cfg.AccountResolver != nil {
		return cfg.AccountResolver(ctx, claims.Subject())
	}

	return &auth.SecurityContext{
		Subject:     claims.Subject(),
		Role:        claims.Role(),
		Authorities: claims.Authorities(),
	}, nil
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return err
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = "header:" + fiber.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.KeyFunc == nil && cfg.TokenValidator == nil {
		if len(cfg.SigningKeys) > 0 || len(cfg.JWKSetURLs) > 0 {
			var givenKeys map[string]keyfunc.GivenKey
			if cfg.SigningKeys != nil {
				givenKeys = make(map[string]keyfunc.GivenKey, len(cfg.SigningKeys))
				for kid, key := range cfg.SigningKeys {
					givenKeys[kid] = keyfunc.NewGivenCustom(key.Key, keyfunc.GivenKeyOptions{
						Algorithm: key.JWTAlg,
					})
				}
			}
			if len(cfg.JWKSetURLs) > 0 {
				var err error
				cfg.KeyFunc, err = multiKeyfunc(givenKeys, cfg.JWKSetURLs)
				if err != nil {
					panic("Failed to create keyfunc from JWK Set URL: " + err.Error())
				}
			} else {
				cfg.KeyFunc = keyfunc.NewGiven(givenKeys).Keyfunc
			}
		} else if cfg.SigningKey.Key != nil {
			cfg.KeyFunc = signingKeyFunc(cfg.SigningKey)
		}
	}

	if cfg.TokenValidator == nil {
		if cfg.KeyFunc == nil {
			panic("AUTH: JWT middleware configuration: At least one of the following is required: TokenValidator, KeyFunc, JWKSetURLs, SigningKeys, or SigningKey.")
		}
		cfg.TokenValidator = keyfuncValidator{keyFunc: cfg.KeyFunc}
	}

	return cfg
}

// keyfuncValidator validates tokens with a jwt.Keyfunc when no TokenValidator
// was supplied, e.g. multi-key or JWKS deployments.
type keyfuncValidator struct {
	keyFunc jwt.Keyfunc
}

func (v keyfuncValidator) Validate(tokenString string) (*auth.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.JWTClaims{}, v.keyFunc)
	if err != nil {
		if jwtErrorIs(err, jwt.ErrTokenExpired) && !jwtErrorIs(err, jwt.ErrSignatureInvalid) {
			return nil, auth.ErrTokenExpired
		}
		return nil, auth.ErrTokenMalformed
	}

	claims, ok := token.Claims.(*auth.JWTClaims)
	if !ok || !token.Valid {
		return nil, auth.ErrTokenMalformed
	}

	return claims, nil
}

func jwtErrorIs(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		type unwrapper interface{ Unwrap() []error }
		if joined, ok := err.(unwrapper); ok {
			for _, e := range joined.Unwrap() {
				if jwtErrorIs(e, target) {
					return true
				}
			}
			return false
		}
		type single interface{ Unwrap() error }
		if u, ok := err.(single); ok {
			err = u.Unwrap()
			continue
		}
		return false
	}
	return false
}

func multiKeyfunc(givenKeys map[string]keyfunc.GivenKey, jwtSetUrls []string) (jwt.Keyfunc, error) {
	opts := keyfuncOptions(givenKeys)
	m := make(map[string]keyfunc.Options, len(jwtSetUrls))
	for _, url := range jwtSetUrls {
		m[url] = opts
	}
	mopts := keyfunc.MultipleOptions{
		KeySelector: keyfunc.KeySelectorFirst,
	}
	multi, err := keyfunc.GetMultiple(m, mopts)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWT URLs: %w", err)
	}
	return multi.Keyfunc, nil
}

func keyfuncOptions(givenKeys map[string]keyfunc.GivenKey) keyfunc.Options {
	return keyfunc.Options{
		GivenKeys: givenKeys,
		RefreshErrorHandler: func(err error) {
			log.Printf("failed to do a background refresh of JWT set: %s", err)
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	}
}

func signingKeyFunc(key SigningKey) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if key.JWTAlg != "" {
			alg, ok := token.Header["alg"].(string)
			if !ok {
				return nil, fmt.Errorf("unexpected JWT signing method: expected %q got: missing json type", key.JWTAlg)
			}
			if alg != key.JWTAlg {
				return nil, fmt.Errorf("unexpected jwt signing method: expected: %q: got: %q", key.JWTAlg, alg)
			}
		}
		return key.Key, nil
	}
}
