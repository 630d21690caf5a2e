package store

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"

	"github.com/bloodcare/bloodcare/auth"
)

// seedPassword is the well-known development password for seeded accounts.
const seedPassword = "12345678"

var seedRoles = []Role{
	{Name: auth.RoleAdmin, Description: "System Administrator"},
	{Name: auth.RoleStaff, Description: "Hospital Staff"},
	{Name: auth.RoleMember, Description: "Normal user role"},
}

var seedAccounts = []struct {
	Username string
	Email    string
	Role     auth.RoleTag
}{
	{Username: "admin", Email: "admin@system.local", Role: auth.RoleAdmin},
	{Username: "staff", Email: "staff@hospital.local", Role: auth.RoleStaff},
	{Username: "member", Email: "member@user.local", Role: auth.RoleMember},
}

// Seed makes sure the base roles and the three bootstrap accounts exist.
// It is idempotent: accounts get deterministic ids derived from their email
// so repeated runs are no-ops.
func Seed(ctx context.Context, repo RepositoryManager, logger auth.Logger) error {
	return repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, role := range seedRoles {
			record := role
			if _, err := tx.NewInsert().
				Model(&record).
				On("CONFLICT (role_name) DO NOTHING").
				Exec(ctx); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed role").
					WithMetadata(map[string]any{"role": role.Name})
			}
		}

		for _, seed := range seedAccounts {
			_, err := repo.Accounts().FindByUsernameTx(ctx, tx, seed.Username)
			if err == nil {
				continue
			}
			if !repository.IsRecordNotFound(err) && !goerrors.IsNotFound(err) {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check seed account").
					WithMetadata(map[string]any{"username": seed.Username})
			}

			hash, err := auth.HashPassword(seedPassword)
			if err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash seed password")
			}

			account := &Account{
				Username:     seed.Username,
				Email:        seed.Email,
				PasswordHash: hash,
				Active:       true,
				Role:         seed.Role,
			}

			if id, err := hashid.NewUUID(seed.Email); err == nil {
				account.ID = id
			}

			if _, err := repo.Accounts().CreateTx(ctx, tx, account); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed account").
					WithMetadata(map[string]any{"username": seed.Username})
			}

			logger.Info("seeded account %s (%s)", seed.Username, seed.Role)
		}

		return nil
	})
}
