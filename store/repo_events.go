package store

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Events is the donation event repository surface
type Events interface {
	List(ctx context.Context) ([]*DonationEvent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*DonationEvent, error)
	Create(ctx context.Context, record *DonationEvent) (*DonationEvent, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *DonationEvent) (*DonationEvent, error)
	Update(ctx context.Context, record *DonationEvent) (*DonationEvent, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type events struct {
	repo repository.Repository[*DonationEvent]
	db   *bun.DB
}

var _ Events = (*events)(nil)

func NewEventsRepository(db *bun.DB) Events {
	repo := repository.NewRepository[*DonationEvent](db, repository.ModelHandlers[*DonationEvent]{
		NewRecord: func() *DonationEvent { return &DonationEvent{} },
		GetID: func(e *DonationEvent) uuid.UUID {
			if e == nil {
				return uuid.Nil
			}
			return e.ID
		},
		SetID: func(e *DonationEvent, id uuid.UUID) {
			if e != nil {
				e.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &events{
		repo: repo,
		db:   db,
	}
}

func (e *events) List(ctx context.Context) ([]*DonationEvent, error) {
	var records []*DonationEvent
	err := e.db.NewSelect().
		Model(&records).
		Order("start_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list donation events")
	}
	return records, nil
}

func (e *events) GetByID(ctx context.Context, id uuid.UUID) (*DonationEvent, error) {
	record := &DonationEvent{}
	err := e.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, goerrors.New("Event not found", goerrors.CategoryNotFound).
				WithCode(goerrors.CodeNotFound).
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load donation event")
	}

	return record, nil
}

func (e *events) Create(ctx context.Context, record *DonationEvent) (*DonationEvent, error) {
	return e.CreateTx(ctx, e.db, record)
}

func (e *events) CreateTx(ctx context.Context, tx bun.IDB, record *DonationEvent) (*DonationEvent, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		record.Status = EventStatusUpcoming
	}
	return e.repo.CreateTx(ctx, tx, record)
}

func (e *events) Update(ctx context.Context, record *DonationEvent) (*DonationEvent, error) {
	if record.ID == uuid.Nil {
		return nil, goerrors.New("event id is required", goerrors.CategoryBadInput)
	}
	return e.repo.UpdateTx(ctx, e.db, record, repository.UpdateByID(record.ID.String()))
}

// Remove soft-deletes the event so history stays queryable.
func (e *events) Remove(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	res, err := e.db.NewUpdate().
		Model((*DonationEvent)(nil)).
		Set("deleted_at = ?", now).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete donation event")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return goerrors.New("Event not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound).
			WithMetadata(map[string]any{"id": id.String()})
	}

	return nil
}
