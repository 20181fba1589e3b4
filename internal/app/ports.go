package app

import (
	"context"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/importer"
)

type BlueprintImportResult struct {
	Blueprint  *domain.Blueprint
	LineCount  int
	RatioCount int
	NonFinite  int
	Replaced   bool
}

type InitiativeImportResult struct {
	Created   int
	Updated   int
	NonFinite int
	// SetVersion is the initiative-set version after the import.
	SetVersion int
}

type ImportBlueprintUseCase interface {
	ImportBlueprint(ctx context.Context, filePath string) (*BlueprintImportResult, error)
	ImportBlueprintFromSchema(ctx context.Context, schema *importer.BlueprintSchema) (*BlueprintImportResult, error)
}

type ImportInitiativesUseCase interface {
	ImportInitiatives(ctx context.Context, filePath string) (*InitiativeImportResult, error)
	ImportInitiativesFromSchema(ctx context.Context, schema *importer.InitiativeFileSchema) (*InitiativeImportResult, error)
}

type AnalyticsUseCase interface {
	Lines(ctx context.Context, req LinesRequest) (*LinesResponse, error)
	Chart(ctx context.Context, req ChartRequest) (*ChartResponse, error)
	Ratios(ctx context.Context, req RatiosRequest) (*RatiosResponse, error)
	Breakdown(ctx context.Context, req BreakdownRequest) (*BreakdownResponse, error)
	Guardrails(ctx context.Context, blueprintID string) (*GuardrailsResponse, error)
	KPIs(ctx context.Context, blueprintID string) (*KPIsResponse, error)
}
