package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// VerifiedAccount is a successfully verified credential record together with
// its role tag.
type VerifiedAccount struct {
	record *CredentialRecord
}

var _ Identity = (*VerifiedAccount)(nil)

func (a *VerifiedAccount) ID() string          { return a.record.ID }
func (a *VerifiedAccount) AccountCode() string { return a.record.AccountCode }
func (a *VerifiedAccount) Username() string    { return a.record.Username }
func (a *VerifiedAccount) Email() string       { return a.record.Email }
func (a *VerifiedAccount) Role() RoleTag       { return a.record.Role }

// CredentialVerifier resolves a login identifier against the account store
// and checks the supplied secret.
type CredentialVerifier struct {
	store  AccountStore
	logger Logger
}

// NewCredentialVerifier will create a new CredentialVerifier
func NewCredentialVerifier(store AccountStore) *CredentialVerifier {
	return &CredentialVerifier{
		store:  store,
		logger: defLogger{},
	}
}

func (v *CredentialVerifier) WithLogger(l Logger) *CredentialVerifier {
	v.logger = l
	return v
}

// Verify runs the ordered credential checks: missing credentials, account
// resolution (username then email), active flag, then the password. The
// ordering is a deliberate tie-break policy so an inactive account never
// leaks wrong-password versus not-found.
func (v *CredentialVerifier) Verify(ctx context.Context, identifier, password string) (*VerifiedAccount, error) {
	if identifier == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	record, err := v.store.FindByUsername(ctx, identifier)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve account by username")
		}
		// the single identifier field accepts either username or email
		record, err = v.store.FindByEmail(ctx, identifier)
		if err != nil {
			if errors.IsNotFound(err) {
				return nil, ErrAccountNotFound
			}
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve account by email")
		}
	}

	if !record.Active {
		return nil, ErrAccountInactive
	}

	if err := ComparePasswordAndHash(password, record.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrWrongPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to compare password hash")
	}

	return &VerifiedAccount{record: record}, nil
}

// Resolve finds an account by its login alias without checking credentials.
// Used by the request authenticator to rebuild the security context.
func (v *CredentialVerifier) Resolve(ctx context.Context, subject string) (*VerifiedAccount, error) {
	record, err := v.store.FindByUsername(ctx, subject)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve account by subject")
	}

	return &VerifiedAccount{record: record}, nil
}
