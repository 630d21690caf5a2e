package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() RoleTag
}

// CredentialRecord is the narrow view of an account the auth core reads.
// It is owned by the persistence layer; the core never mutates it.
type CredentialRecord struct {
	ID           string
	AccountCode  string
	Username     string
	Email        string
	PasswordHash string
	Active       bool
	Role         RoleTag
}

// AccountStore is the boundary contract with the account persistence layer:
// resolve a credential record and role by login identifier. Not-found is
// signaled with an errors.CategoryNotFound error.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (*CredentialRecord, error)
	FindByEmail(ctx context.Context, email string) (*CredentialRecord, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetContextKey() string
	GetTokenExpiration() int64 // milliseconds
	GetTokenLookup() string
	GetAuthScheme() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
