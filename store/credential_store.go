package store

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"

	"github.com/bloodcare/bloodcare/auth"
)

// CredentialStore adapts the accounts repository to the narrow read-only
// contract the auth core verifies credentials against.
type CredentialStore struct {
	accounts Accounts
}

var _ auth.AccountStore = (*CredentialStore)(nil)

func NewCredentialStore(accounts Accounts) *CredentialStore {
	return &CredentialStore{accounts: accounts}
}

func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (*auth.CredentialRecord, error) {
	record, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, translateLookupError(err, "username", username)
	}
	return credentialRecord(record), nil
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*auth.CredentialRecord, error) {
	record, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, translateLookupError(err, "email", email)
	}
	return credentialRecord(record), nil
}

func credentialRecord(record *Account) *auth.CredentialRecord {
	return &auth.CredentialRecord{
		ID:           record.ID.String(),
		AccountCode:  record.AccountCode,
		Username:     record.Username,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		Active:       record.Active,
		Role:         record.Role,
	}
}

func translateLookupError(err error, field, value string) error {
	if repository.IsRecordNotFound(err) || errors.IsNotFound(err) {
		return errors.New("account not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound).
			WithMetadata(map[string]any{field: value})
	}
	return errors.Wrap(err, errors.CategoryInternal, "account lookup failed")
}
