package engine

import (
	"testing"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratioFixture(months int) ([]domain.LineItem, []domain.MonthKey, ValueMap) {
	horizon := domain.MonthRange("2024-07", months)
	rev := make(map[domain.MonthKey]float64)
	cogs := make(map[domain.MonthKey]float64)
	for i, m := range horizon {
		rev[m] = float64(100 + i*10)
		cogs[m] = 40
	}
	lines := []domain.LineItem{
		testutil.Revenue("REV", testutil.WithMonths(rev)),
		testutil.Cost("COGS", testutil.WithMonths(cogs)),
		testutil.Subtotal("GP"),
		testutil.RollUp("EMPTY"),
	}
	src, _ := BaseSource(lines, horizon)
	return lines, horizon, Resolve(lines, horizon, nil, src)
}

func windowByName(t *testing.T, res RatioResult, w Window) RatioValue {
	t.Helper()
	for _, rv := range res.Windows {
		if rv.Window == w {
			return rv
		}
	}
	t.Fatalf("window %s missing", w)
	return RatioValue{}
}

func TestEvaluateRatios_Windows(t *testing.T) {
	lines, horizon, values := ratioFixture(18) // 2024-07 .. 2025-12
	def := domain.RatioDefinition{ID: "gm", Label: "Gross margin", NumeratorCode: "GP", DenominatorCode: "REV", Format: domain.FormatPercentage, Precision: 1}
	rc := RatioContext{
		Codes:   IndexByCode(lines),
		Horizon: horizon,
		Fiscal:  domain.FiscalYearConfig{StartMonth: 7, Naming: domain.FiscalNamedByEnd},
	}

	results := EvaluateRatios([]domain.RatioDefinition{def}, values, rc)
	require.Len(t, results, 1)
	require.Len(t, results[0].Windows, 3)

	last := windowByName(t, results[0], WindowLastMonth)
	assert.True(t, last.Available)
	assert.Equal(t, "2025-12", last.Label)
	assert.InDelta(t, 230.0/270.0, last.Value, 1e-12)

	t12 := windowByName(t, results[0], WindowTrailing12)
	assert.Len(t, t12.Months, 12)
	assert.Equal(t, domain.MonthKey("2025-01"), t12.Months[0])

	fy := windowByName(t, results[0], WindowFiscalYear)
	assert.Equal(t, "FY2026", fy.Label)
	assert.Len(t, fy.Months, 6, "FY2026 runs 2025-07..2026-06; only six months are in the horizon")
}

func TestEvaluateRatios_FiscalWindowFollowsReportingPeriod(t *testing.T) {
	lines, horizon, values := ratioFixture(18)
	def := domain.RatioDefinition{NumeratorCode: "GP", DenominatorCode: "REV"}
	rc := RatioContext{
		Codes:   IndexByCode(lines),
		Horizon: horizon,
		Fiscal:  domain.FiscalYearConfig{StartMonth: 7},
		Period:  &domain.ReportingPeriod{Month: 3, Year: 2025},
	}
	fy := windowByName(t, EvaluateRatios([]domain.RatioDefinition{def}, values, rc)[0], WindowFiscalYear)
	assert.Equal(t, "FY2025", fy.Label)
	assert.Len(t, fy.Months, 12)
}

func TestEvaluateRatios_ShortHorizonUsesAllMonths(t *testing.T) {
	lines, horizon, values := ratioFixture(5)
	def := domain.RatioDefinition{NumeratorCode: "COGS", DenominatorCode: "REV", Format: domain.FormatMultiple}
	rc := RatioContext{Codes: IndexByCode(lines), Horizon: horizon, Fiscal: domain.DefaultFiscalYear()}

	t12 := windowByName(t, EvaluateRatios([]domain.RatioDefinition{def}, values, rc)[0], WindowTrailing12)
	assert.Len(t, t12.Months, 5)
	assert.InDelta(t, -200.0/600.0, t12.Value, 1e-12)
}

func TestEvaluateRatios_UnavailableDegradesPerRatio(t *testing.T) {
	lines, horizon, values := ratioFixture(3)
	defs := []domain.RatioDefinition{
		{ID: "missing", NumeratorCode: "NOPE", DenominatorCode: "REV"},
		{ID: "zero", NumeratorCode: "REV", DenominatorCode: "EMPTY"},
		{ID: "ok", NumeratorCode: "GP", DenominatorCode: "REV"},
	}
	rc := RatioContext{Codes: IndexByCode(lines), Horizon: horizon, Fiscal: domain.DefaultFiscalYear()}
	results := EvaluateRatios(defs, values, rc)
	require.Len(t, results, 3)

	for _, rv := range results[0].Windows {
		assert.False(t, rv.Available)
	}
	for _, rv := range results[1].Windows {
		assert.False(t, rv.Available, "zero denominator is unavailable, not Inf")
	}
	for _, rv := range results[2].Windows {
		assert.True(t, rv.Available)
	}
}

func TestEvaluateRatios_EmptyHorizon(t *testing.T) {
	results := EvaluateRatios([]domain.RatioDefinition{{NumeratorCode: "A", DenominatorCode: "B"}}, ValueMap{}, RatioContext{})
	require.Len(t, results, 1)
	for _, rv := range results[0].Windows {
		assert.False(t, rv.Available)
	}
}

func TestFormatRatio(t *testing.T) {
	pct := domain.RatioDefinition{Format: domain.FormatPercentage, Precision: 1}
	assert.Equal(t, "42.5%", FormatRatio(RatioValue{Value: 0.4253, Available: true}, pct))

	mult := domain.RatioDefinition{Format: domain.FormatMultiple, Precision: 2}
	assert.Equal(t, "3.14x", FormatRatio(RatioValue{Value: 3.14159, Available: true}, mult))

	whole := domain.RatioDefinition{Format: domain.FormatPercentage, Precision: 0}
	assert.Equal(t, "-12%", FormatRatio(RatioValue{Value: -0.12, Available: true}, whole))

	assert.Equal(t, "n/a", FormatRatio(RatioValue{}, pct))
}

func TestRunRate(t *testing.T) {
	_, horizon, values := ratioFixture(18)
	// Trailing twelve months of REV: months 6..17 -> 160..270.
	assert.Equal(t, 2580.0, RunRate(values, "line-REV", horizon))

	_, short, shortValues := ratioFixture(3)
	assert.Equal(t, 330.0, RunRate(shortValues, "line-REV", short))
}

func TestEvaluateRatios_TrailingWindowSpansCalendarMonthsOverSparseData(t *testing.T) {
	lines := []domain.LineItem{
		testutil.Revenue("REV", testutil.WithAmount("2023-06", 50), testutil.WithAmount("2025-01", 100),
			testutil.WithAmount("2025-02", 100), testutil.WithAmount("2025-03", 100)),
		testutil.Cost("COGS", testutil.WithAmount("2025-03", 40)),
	}
	bp := testutil.NewTestBlueprint("sparse", lines, testutil.WithHorizon("2025-01", 3))
	res, err := Compute(Input{Blueprint: bp})
	require.NoError(t, err)
	require.Equal(t, domain.MonthRange("2023-06", 22), res.Horizon)

	def := domain.RatioDefinition{NumeratorCode: "COGS", DenominatorCode: "REV"}
	t12 := windowByName(t, EvaluateRatios([]domain.RatioDefinition{def}, res.Base, res.RatioContext())[0], WindowTrailing12)
	assert.Equal(t, domain.MonthRange("2024-04", 12), t12.Months)
	assert.InDelta(t, -40.0/300.0, t12.Value, 1e-12, "the stray 2023-06 revenue falls outside the window")
}
