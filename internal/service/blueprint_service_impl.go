package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/blueprint/internal/app"
	"github.com/alexanderramin/blueprint/internal/db"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/importer"
	"github.com/alexanderramin/blueprint/internal/repository"
)

type blueprintService struct {
	blueprints repository.BlueprintRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewBlueprintService(blueprints repository.BlueprintRepo, uow db.UnitOfWork, observers ...UseCaseObserver) BlueprintService {
	return &blueprintService{
		blueprints: blueprints,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *blueprintService) ImportBlueprint(ctx context.Context, filePath string) (*app.BlueprintImportResult, error) {
	schema, err := importer.LoadBlueprintSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading blueprint file: %w", err)
	}
	return s.ImportBlueprintFromSchema(ctx, schema)
}

// ImportBlueprintFromSchema creates the blueprint, or replaces it when the
// schema names an existing ID.
func (s *blueprintService) ImportBlueprintFromSchema(ctx context.Context, schema *importer.BlueprintSchema) (result *app.BlueprintImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blueprint": schema.Name}
	defer observe(ctx, s.observer, "import-blueprint", startedAt, fields, &err)

	if errs := importer.ValidateBlueprintSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	bp, stats := importer.ConvertBlueprint(schema)
	result = &app.BlueprintImportResult{
		Blueprint:  bp,
		LineCount:  len(bp.Lines),
		RatioCount: len(bp.Ratios),
		NonFinite:  stats.NonFinite,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBlueprints := repository.NewSQLiteBlueprintRepo(tx)

		existing, err := txBlueprints.Get(ctx, bp.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			err = txBlueprints.Create(ctx, bp)
		case err != nil:
			return err
		default:
			result.Replaced = true
			err = txBlueprints.Replace(ctx, bp, existing.Version)
		}
		if err != nil {
			return err
		}
		_, err = repository.NewSQLiteCollectionVersionRepo(tx).Bump(ctx, repository.CollectionBlueprints)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("saving blueprint: %w", err)
	}

	fields["lines"] = result.LineCount
	fields["non_finite"] = result.NonFinite
	fields["version"] = bp.Version
	return result, nil
}

func (s *blueprintService) Get(ctx context.Context, id string) (*domain.Blueprint, error) {
	return s.blueprints.Get(ctx, id)
}

func (s *blueprintService) List(ctx context.Context) ([]*domain.Blueprint, error) {
	return s.blueprints.List(ctx)
}

// Delete removes a blueprint and bumps the blueprint collection version, so a
// later blueprint under the same ID never matches results computed before.
func (s *blueprintService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteBlueprintRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		_, err := repository.NewSQLiteCollectionVersionRepo(tx).Bump(ctx, repository.CollectionBlueprints)
		return err
	})
}
