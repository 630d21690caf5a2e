package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateSchema creates all tables if they are missing. Intended for the
// embedded sqlite deployment; managed databases run their own migrations.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Role)(nil),
		(*Account)(nil),
		(*Profile)(nil),
		(*DonationEvent)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}

	return nil
}
