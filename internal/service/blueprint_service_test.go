package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/blueprint/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlueprintService_ImportCreatesThenReplaces(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	first, err := svc.blueprints.ImportBlueprintFromSchema(ctx, planSchema())
	require.NoError(t, err)
	assert.False(t, first.Replaced)
	assert.Equal(t, 5, first.LineCount)
	assert.Equal(t, 2, first.RatioCount)
	assert.Equal(t, 1, first.Blueprint.Version)

	schema := planSchema()
	schema.Name = "Operating plan v2"
	second, err := svc.blueprints.ImportBlueprintFromSchema(ctx, schema)
	require.NoError(t, err)
	assert.True(t, second.Replaced)
	assert.Equal(t, 2, second.Blueprint.Version)

	got, err := svc.blueprints.Get(ctx, "bp-plan")
	require.NoError(t, err)
	assert.Equal(t, "Operating plan v2", got.Name)

	list, err := svc.blueprints.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Contains(t, svc.log.String(), "use_case=import-blueprint")
	assert.Contains(t, svc.log.String(), "success=true")
}

func TestBlueprintService_ImportValidationErrors(t *testing.T) {
	svc := newTestServices(t)
	schema := planSchema()
	schema.StartMonth = "January"
	schema.Lines[1].Nature = "income"

	_, err := svc.blueprints.ImportBlueprintFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "start_month")
	assert.Contains(t, err.Error(), "lines[1].nature")
	assert.Contains(t, svc.log.String(), "success=false")
	assert.Contains(t, svc.log.String(), "validation_errors=2")
}

func TestBlueprintService_ImportFromFile(t *testing.T) {
	svc := newTestServices(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	data, err := json.Marshal(planSchema())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res, err := svc.blueprints.ImportBlueprint(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Operating plan", res.Blueprint.Name)

	_, err = svc.blueprints.ImportBlueprint(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "loading blueprint file")
}

func TestBlueprintService_Delete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	_, err := svc.blueprints.ImportBlueprintFromSchema(ctx, planSchema())
	require.NoError(t, err)

	require.NoError(t, svc.blueprints.Delete(ctx, "bp-plan"))
	_, err = svc.blueprints.Get(ctx, "bp-plan")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBlueprintService_WritesBumpCollectionVersion(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	versions := repository.NewSQLiteCollectionVersionRepo(svc.db)

	_, err := svc.blueprints.ImportBlueprintFromSchema(ctx, planSchema())
	require.NoError(t, err)
	_, err = svc.blueprints.ImportBlueprintFromSchema(ctx, planSchema())
	require.NoError(t, err)
	require.NoError(t, svc.blueprints.Delete(ctx, "bp-plan"))

	v, err := versions.Current(ctx, repository.CollectionBlueprints)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	assert.ErrorIs(t, svc.blueprints.Delete(ctx, "bp-plan"), repository.ErrNotFound)
	v, err = versions.Current(ctx, repository.CollectionBlueprints)
	require.NoError(t, err)
	assert.Equal(t, 3, v, "a failed delete leaves the version alone")
}
