package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Login-time rejections. These are recovered locally into a LoginResult and
// never escape the Session Issuer as errors.
var (
	// ErrMissingCredentials is returned when the identifier or secret is empty.
	ErrMissingCredentials = errors.New("Username or password is missing", errors.CategoryValidation).
				WithTextCode("MISSING_CREDENTIALS").
				WithCode(errors.CodeUnauthorized)

	// ErrAccountNotFound is returned when neither username nor email resolves.
	ErrAccountNotFound = errors.New("User not found", errors.CategoryNotFound).
				WithTextCode("ACCOUNT_NOT_FOUND").
				WithCode(errors.CodeNotFound)

	// ErrAccountInactive is returned for deactivated accounts. Checked before
	// the password so an inactive account never leaks wrong-password signals.
	ErrAccountInactive = errors.New("Account is not active", errors.CategoryAuth).
				WithTextCode("ACCOUNT_INACTIVE").
				WithCode(errors.CodeUnauthorized)

	// ErrWrongPassword is returned when the secret does not match.
	ErrWrongPassword = errors.New("Password is incorrect", errors.CategoryAuth).
				WithTextCode("WRONG_PASSWORD").
				WithCode(errors.CodeUnauthorized)
)

// Request-time failures. These short-circuit the middleware pipeline and are
// translated centrally into HTTP responses.
var (
	// ErrTokenExpired means the signature verified but the token is past expiry.
	ErrTokenExpired = errors.New("session expired, please log in again", errors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(errors.CodeUnauthorized)

	// ErrTokenMalformed covers everything else: unparsable tokens, bad
	// signatures, unexpected signing methods.
	ErrTokenMalformed = errors.New("invalid authentication token", errors.CategoryAuth).
			WithTextCode("TOKEN_MALFORMED").
			WithCode(errors.CodeUnauthorized)

	// ErrInsufficientAuthority is the authorization-time rejection: a valid
	// session that lacks the authority a route requires.
	ErrInsufficientAuthority = errors.New("access denied", errors.CategoryAuthz).
				WithTextCode("INSUFFICIENT_AUTHORITY").
				WithCode(errors.CodeForbidden)
)

// ErrNoEmptyString rejects hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD").
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the bcrypt comparison failure.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
