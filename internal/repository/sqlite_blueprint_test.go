package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlueprint(name string) *domain.Blueprint {
	lines := []domain.LineItem{
		testutil.RollUp("REV"),
		testutil.Revenue("SUBS", testutil.WithIndent(1), testutil.WithAmount("2025-01", 100)),
		testutil.Cost("COGS", testutil.WithAmount("2025-01", 40)),
		testutil.Subtotal("GP"),
	}
	return testutil.NewTestBlueprint(name, lines,
		testutil.WithFiscalStart(4),
		testutil.WithRatios(domain.RatioDefinition{
			ID: "gm", Label: "Gross margin", NumeratorCode: "GP", DenominatorCode: "REV",
			Format: domain.FormatPercentage, Precision: 1,
		}))
}

func TestBlueprintRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBlueprintRepo(db)
	ctx := context.Background()

	bp := sampleBlueprint("Operating plan")
	require.NoError(t, repo.Create(ctx, bp))
	assert.Equal(t, 1, bp.Version)

	got, err := repo.Get(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Operating plan", got.Name)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, domain.MonthKey("2025-01"), got.StartMonth)
	assert.Equal(t, 12, got.MonthCount)
	assert.Equal(t, 4, got.FiscalYear.StartMonth)
	require.Len(t, got.Ratios, 1)
	assert.Equal(t, "GP", got.Ratios[0].NumeratorCode)
	assert.Equal(t, domain.FormatPercentage, got.Ratios[0].Format)

	require.Len(t, got.Lines, 4)
	assert.Equal(t, "SUBS", got.Lines[1].Code)
	assert.Equal(t, 1, got.Lines[1].Indent)
	assert.Equal(t, 100.0, got.Lines[1].Months["2025-01"])
	assert.Equal(t, domain.NatureCost, got.Lines[2].Nature)
	assert.Equal(t, domain.ModeCumulative, got.Lines[3].Mode)
}

func TestBlueprintRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBlueprintRepo(db)

	_, err := repo.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestBlueprintRepo_List_OrderedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBlueprintRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleBlueprint("Zeta")))
	require.NoError(t, repo.Create(ctx, sampleBlueprint("Alpha")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Zeta", list[1].Name)
}

func TestBlueprintRepo_Replace_BumpsVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBlueprintRepo(db)
	ctx := context.Background()

	bp := sampleBlueprint("Plan")
	require.NoError(t, repo.Create(ctx, bp))

	bp.Lines = append(bp.Lines, testutil.Revenue("OTHER", testutil.WithAmount("2025-02", 5)))
	require.NoError(t, repo.Replace(ctx, bp, 1))
	assert.Equal(t, 2, bp.Version)

	got, err := repo.Get(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Len(t, got.Lines, 5)
}

func TestBlueprintRepo_Replace_StaleVersionConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBlueprintRepo(db)
	ctx := context.Background()

	bp := sampleBlueprint("Plan")
	require.NoError(t, repo.Create(ctx, bp))
	require.NoError(t, repo.Replace(ctx, bp, 1))

	err := repo.Replace(ctx, bp, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := repo.Get(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version, "a rejected write leaves the stored version unchanged")
}

func TestBlueprintRepo_Replace_Missing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBlueprintRepo(db)

	err := repo.Replace(context.Background(), sampleBlueprint("Ghost"), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlueprintRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBlueprintRepo(db)
	ctx := context.Background()

	bp := sampleBlueprint("Doomed")
	require.NoError(t, repo.Create(ctx, bp))
	require.NoError(t, repo.Delete(ctx, bp.ID))

	_, err := repo.Get(ctx, bp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, bp.ID), ErrNotFound)
}
