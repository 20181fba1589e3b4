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

type initiativeService struct {
	initiatives repository.InitiativeRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewInitiativeService(initiatives repository.InitiativeRepo, uow db.UnitOfWork, observers ...UseCaseObserver) InitiativeService {
	return &initiativeService{
		initiatives: initiatives,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *initiativeService) ImportInitiatives(ctx context.Context, filePath string) (*app.InitiativeImportResult, error) {
	schema, err := importer.LoadInitiativeSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading initiative file: %w", err)
	}
	return s.ImportInitiativesFromSchema(ctx, schema)
}

// ImportInitiativesFromSchema upserts every initiative and bumps the
// initiative-set version once, all in one transaction.
func (s *initiativeService) ImportInitiativesFromSchema(ctx context.Context, schema *importer.InitiativeFileSchema) (result *app.InitiativeImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"initiatives": len(schema.Initiatives)}
	defer observe(ctx, s.observer, "import-initiatives", startedAt, fields, &err)

	if errs := importer.ValidateInitiativeSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	converted, stats := importer.ConvertInitiatives(schema)
	result = &app.InitiativeImportResult{NonFinite: stats.NonFinite}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInitiatives := repository.NewSQLiteInitiativeRepo(tx)
		txVersions := repository.NewSQLiteCollectionVersionRepo(tx)

		for i := range converted {
			ini := &converted[i]
			expected := 0
			existing, err := txInitiatives.Get(ctx, ini.ID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
			case err != nil:
				return err
			default:
				expected = existing.Version
			}
			if err := txInitiatives.Upsert(ctx, ini, expected); err != nil {
				return fmt.Errorf("saving initiative %q: %w", ini.Name, err)
			}
			if expected == 0 {
				result.Created++
			} else {
				result.Updated++
			}
		}

		v, err := txVersions.Bump(ctx, repository.CollectionInitiatives)
		if err != nil {
			return err
		}
		result.SetVersion = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["created"] = result.Created
	fields["updated"] = result.Updated
	fields["set_version"] = result.SetVersion
	return result, nil
}

func (s *initiativeService) List(ctx context.Context) ([]domain.Initiative, error) {
	return s.initiatives.List(ctx)
}

// Delete removes an initiative and bumps the initiative-set version.
func (s *initiativeService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteInitiativeRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		_, err := repository.NewSQLiteCollectionVersionRepo(tx).Bump(ctx, repository.CollectionInitiatives)
		return err
	})
}
