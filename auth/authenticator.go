package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// LoginResult is the outcome of a login attempt. A nil Token means the
// attempt was rejected and Message carries the reason; callers must map a
// nil token to an authentication failure.
type LoginResult struct {
	Token    *string `json:"token"`
	Message  string  `json:"message"`
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

// Succeeded reports whether a token was issued
func (r LoginResult) Succeeded() bool {
	return r.Token != nil
}

// Auther issues and validates stateless sessions
type Auther struct {
	verifier     *CredentialVerifier
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store AccountStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		time.Duration(opts.GetTokenExpiration())*time.Millisecond,
		defLogger{},
	)

	return &Auther{
		verifier:     NewCredentialVerifier(store),
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.verifier.WithLogger(logger)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Verifier returns the credential verifier, shared with the request
// authenticator for subject re-resolution.
func (s *Auther) Verifier() *CredentialVerifier {
	return s.verifier
}

// Login verifies the credentials and mints a session token. Rejections are
// recovered into the result value; this method never returns an error to
// the caller.
func (s *Auther) Login(ctx context.Context, identifier, password string) LoginResult {
	account, err := s.verifier.Verify(ctx, identifier, password)
	if err != nil {
		s.logger.Warn("Login rejected for %q: %v", identifier, err)
		return LoginResult{Message: rejectionMessage(err)}
	}

	token, err := s.tokenService.Generate(account.Username(), account.Role())
	if err != nil {
		s.logger.Error("Login token generation failed: %v", err)
		return LoginResult{Message: "Login failed: " + err.Error()}
	}

	username := account.Username()
	role := account.Role()

	return LoginResult{
		Token:    &token,
		Message:  "Login successful",
		Username: &username,
		Role:     &role,
	}
}

// Logout confirms the end of a session. Sessions are stateless so there is
// no server-side record to invalidate; the token stays valid until expiry.
func (s *Auther) Logout(token string) string {
	return "logout successful"
}

// Validate reports whether a token decodes, carries a subject, and is not
// expired. Advisory: it degrades to false instead of propagating errors.
func (s *Auther) Validate(token string) bool {
	subject, err := s.tokenService.SubjectOf(token)
	if err != nil {
		return false
	}
	if subject == "" {
		return false
	}
	return !s.tokenService.IsExpired(token)
}

// rejectionMessage maps a verification failure to the human-readable reason
// carried in the login response. Internal failures get the catch-all prefix.
func rejectionMessage(err error) string {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		switch richErr.Category {
		case errors.CategoryValidation, errors.CategoryNotFound, errors.CategoryAuth:
			return richErr.Message
		}
	}
	return "Login failed: " + err.Error()
}
