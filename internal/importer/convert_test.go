package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBlueprint_DefaultsAndNormalization(t *testing.T) {
	s := validBlueprintSchema()
	s.Lines[0].Months = MonthAmounts{"2025-01": 999} // dropped: not a manual line
	s.Lines[0].Nature = "cost"

	bp, stats := ConvertBlueprint(s)
	assert.Zero(t, stats.NonFinite)
	assert.NotEmpty(t, bp.ID)
	assert.Equal(t, domain.MonthKey("2025-01"), bp.StartMonth)
	assert.Equal(t, domain.DefaultFiscalYear(), bp.FiscalYear)

	require.Len(t, bp.Lines, 4)
	assert.Equal(t, domain.ModeChildren, bp.Lines[0].Mode)
	assert.Equal(t, domain.NatureSummary, bp.Lines[0].Nature)
	assert.Nil(t, bp.Lines[0].Months)

	assert.Equal(t, domain.ModeManual, bp.Lines[1].Mode)
	assert.Equal(t, domain.NatureRevenue, bp.Lines[1].Nature)
	assert.Equal(t, 100.0, bp.Lines[1].Months["2025-01"])
	assert.NotEqual(t, bp.Lines[1].ID, bp.Lines[2].ID)

	require.Len(t, bp.Ratios, 1)
	assert.Equal(t, domain.FormatPercentage, bp.Ratios[0].Format)
	assert.Equal(t, 1, bp.Ratios[0].Precision)
	assert.NotEmpty(t, bp.Ratios[0].ID)
}

func TestConvertBlueprint_KeepsExplicitIDsAndFiscalYear(t *testing.T) {
	s := validBlueprintSchema()
	s.ID = "bp-1"
	s.Lines[1].ID = "subs"
	s.FiscalYear = &FiscalYearImport{StartMonth: 4, Naming: "start"}

	bp, _ := ConvertBlueprint(s)
	assert.Equal(t, "bp-1", bp.ID)
	assert.Equal(t, "subs", bp.Lines[1].ID)
	assert.Equal(t, domain.FiscalYearConfig{StartMonth: 4, Naming: domain.FiscalNamedByStart}, bp.FiscalYear)
}

func TestConvertBlueprint_NonNumericCellsBecomeZero(t *testing.T) {
	raw := `{
		"name": "Messy",
		"start_month": "2025-01",
		"month_count": 3,
		"lines": [
			{"code": "A", "name": "A", "months": {"2025-01": "12.5", "2025-02": "n/a", "2025-03": null}},
			{"code": "B", "name": "B", "months": {"2025-01": "Infinity", "2025-02": "", "2025-03": 7}}
		]
	}`
	var s BlueprintSchema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.Empty(t, ValidateBlueprintSchema(&s))

	bp, stats := ConvertBlueprint(&s)
	assert.Equal(t, 2, stats.NonFinite)
	assert.Equal(t, 12.5, bp.Lines[0].Months["2025-01"])
	assert.Equal(t, 0.0, bp.Lines[0].Months["2025-02"])
	assert.Equal(t, 0.0, bp.Lines[1].Months["2025-01"])
	assert.Equal(t, 7.0, bp.Lines[1].Months["2025-03"])
}

func TestConvertInitiatives_ActiveStageDefaultsToLast(t *testing.T) {
	var actuals MonthAmounts
	require.NoError(t, json.Unmarshal([]byte(`{"2025-03": "NaN"}`), &actuals))

	s := validInitiativeSchema()
	s.Initiatives[0].Stages = append(s.Initiatives[0].Stages, StageImport{
		Name:       "L2",
		Financials: []EntryImport{{LineCode: "COGS", Actuals: actuals}},
	})

	got, stats := ConvertInitiatives(s)
	require.Len(t, got, 1)
	assert.Equal(t, 1, stats.NonFinite)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "L2", got[0].ActiveStage)

	active := got[0].Active()
	require.NotNil(t, active)
	assert.Equal(t, "COGS", active.Financials[0].LineCode)
	assert.Equal(t, 0.0, active.Financials[0].Actuals["2025-03"])

	first := got[0].Stages[0]
	assert.Equal(t, 15.0, first.Financials[0].Distribution["2025-02"])
	assert.Equal(t, 3.0, first.KPIs[0].Distribution["2025-02"])
}

func TestLoadSchemas_FromFile(t *testing.T) {
	dir := t.TempDir()
	bpPath := filepath.Join(dir, "bp.json")
	data, err := json.Marshal(validBlueprintSchema())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(bpPath, data, 0o644))

	bp, err := LoadBlueprintSchema(bpPath)
	require.NoError(t, err)
	assert.Equal(t, "Operating plan", bp.Name)
	assert.Len(t, bp.Lines, 4)

	iniPath := filepath.Join(dir, "ini.json")
	require.NoError(t, os.WriteFile(iniPath, []byte(`{"initiatives": [{"name": "X", "stages": [{"name": "L1"}]}]}`), 0o644))
	ini, err := LoadInitiativeSchema(iniPath)
	require.NoError(t, err)
	require.Len(t, ini.Initiatives, 1)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{`), 0o644))
	_, err = LoadBlueprintSchema(badPath)
	assert.ErrorContains(t, err, "parsing blueprint file")

	_, err = LoadInitiativeSchema(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
