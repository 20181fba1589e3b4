package repository

import (
	"context"

	"github.com/alexanderramin/blueprint/internal/domain"
)

// Collection names tracked in collection_versions.
const (
	CollectionInitiatives = "initiatives"
	CollectionBlueprints  = "blueprints"
)

// BlueprintRepo stores versioned blueprint documents.
type BlueprintRepo interface {
	Create(ctx context.Context, b *domain.Blueprint) error
	Get(ctx context.Context, id string) (*domain.Blueprint, error)
	List(ctx context.Context) ([]*domain.Blueprint, error)
	// Replace overwrites the document when the stored version equals
	// expectedVersion and bumps the version on success.
	Replace(ctx context.Context, b *domain.Blueprint, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

// InitiativeRepo stores versioned initiative documents.
type InitiativeRepo interface {
	// Upsert inserts when expectedVersion is 0 and the initiative is new,
	// otherwise updates under the same precondition as BlueprintRepo.Replace.
	Upsert(ctx context.Context, i *domain.Initiative, expectedVersion int) error
	Get(ctx context.Context, id string) (*domain.Initiative, error)
	List(ctx context.Context) ([]domain.Initiative, error)
	Delete(ctx context.Context, id string) error
}

// CollectionVersionRepo keeps a monotonic version per collection so callers
// can detect that any member changed.
type CollectionVersionRepo interface {
	Current(ctx context.Context, collection string) (int, error)
	Bump(ctx context.Context, collection string) (int, error)
}

type SettingsRepo interface {
	GetPeriod(ctx context.Context) (*domain.ReportingPeriod, error)
	SetPeriod(ctx context.Context, p domain.ReportingPeriod) error
}
