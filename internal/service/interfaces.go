package service

import (
	"context"

	"github.com/alexanderramin/blueprint/internal/app"
	"github.com/alexanderramin/blueprint/internal/domain"
)

type BlueprintService interface {
	app.ImportBlueprintUseCase
	Get(ctx context.Context, id string) (*domain.Blueprint, error)
	List(ctx context.Context) ([]*domain.Blueprint, error)
	Delete(ctx context.Context, id string) error
}

type InitiativeService interface {
	app.ImportInitiativesUseCase
	List(ctx context.Context) ([]domain.Initiative, error)
	Delete(ctx context.Context, id string) error
}

type SettingsService interface {
	// GetPeriod returns nil when no reporting period is configured.
	GetPeriod(ctx context.Context) (*domain.ReportingPeriod, error)
	SetPeriod(ctx context.Context, monthKey string) (*domain.ReportingPeriod, error)
}

type AnalyticsService interface {
	app.AnalyticsUseCase
}
