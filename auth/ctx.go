package auth

import "context"

var securityCtxKey = &contextKey{"security_context"}

type contextKey struct {
	name string
}

// SecurityContext is the per-request record of the authenticated caller.
// Created once per request when a valid token is presented, read by the
// authorization gate and handlers, and discarded with the request. Never
// shared across requests.
type SecurityContext struct {
	AccountID   string
	AccountCode string
	Subject     string
	Role        RoleTag
	Authorities []string
}

// HasAuthority checks the context's authority set against a required
// authority. Both sides are canonicalized so "STAFF" and "ROLE_STAFF" match.
func (sc *SecurityContext) HasAuthority(required string) bool {
	if sc == nil {
		return false
	}
	want := CanonicalAuthority(required)
	for _, a := range sc.Authorities {
		if CanonicalAuthority(a) == want {
			return true
		}
	}
	return false
}

// NewSecurityContext builds the security context for a resolved account
func NewSecurityContext(account *VerifiedAccount) *SecurityContext {
	return &SecurityContext{
		AccountID:   account.ID(),
		AccountCode: account.AccountCode(),
		Subject:     account.Username(),
		Role:        account.Role(),
		Authorities: AuthoritiesFor(account.Role()),
	}
}

// WithSecurityContext installs the security context in the given context
func WithSecurityContext(ctx context.Context, sc *SecurityContext) context.Context {
	return context.WithValue(ctx, securityCtxKey, sc)
}

// SecurityContextFrom finds the security context, if one was installed for
// this request.
func SecurityContextFrom(ctx context.Context) (*SecurityContext, bool) {
	sc, ok := ctx.Value(securityCtxKey).(*SecurityContext)
	return sc, ok && sc != nil
}
