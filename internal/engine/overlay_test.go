package engine

import (
	"testing"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overlayLines() []domain.LineItem {
	return []domain.LineItem{
		testutil.Revenue("SALES"),
		testutil.Cost("OPEX"),
		testutil.Subtotal("NET"),
	}
}

func TestBuildOverlay_AppliesLineSign(t *testing.T) {
	lines := overlayLines()
	horizon := domain.MonthRange(jan, 2)
	inits := []domain.Initiative{
		testutil.NewTestInitiative("Upsell", testutil.WithInitiativeID("i1"),
			testutil.WithEntry("SALES", map[domain.MonthKey]float64{"2025-01": 40}, map[domain.MonthKey]float64{"2025-01": 35})),
		testutil.NewTestInitiative("Automation", testutil.WithInitiativeID("i2"),
			testutil.WithEntry("OPEX", map[domain.MonthKey]float64{"2025-01": 10, "2025-02": 10}, nil)),
	}

	plan := BuildOverlay(inits, IndexByCode(lines), horizon, SelectPlan)
	assert.Equal(t, 40.0, plan.Aggregate.Get("line-SALES", jan))
	assert.Equal(t, -10.0, plan.Aggregate.Get("line-OPEX", jan))
	assert.Equal(t, -10.0, plan.Aggregate.Get("line-OPEX", "2025-02"))
	assert.Equal(t, -10.0, plan.Attribution["line-OPEX"][jan]["i2"])

	actual := BuildOverlay(inits, IndexByCode(lines), horizon, SelectActual)
	assert.Equal(t, 35.0, actual.Aggregate.Get("line-SALES", jan))
	assert.Equal(t, 0.0, actual.Aggregate.Get("line-OPEX", jan))

	resolved := Resolve(lines, horizon, nil, plan.Aggregate)
	assert.Equal(t, 30.0, resolved.Get("line-NET", jan))
}

func TestBuildOverlay_SumsAcrossInitiativesAndKeepsAttribution(t *testing.T) {
	lines := overlayLines()
	inits := []domain.Initiative{
		testutil.NewTestInitiative("A", testutil.WithInitiativeID("a"),
			testutil.WithEntry("SALES", map[domain.MonthKey]float64{"2025-01": 5}, nil)),
		testutil.NewTestInitiative("B", testutil.WithInitiativeID("b"),
			testutil.WithEntry("SALES", map[domain.MonthKey]float64{"2025-01": 7}, nil),
			testutil.WithEntry("SALES", map[domain.MonthKey]float64{"2025-01": 1}, nil)),
	}
	res := BuildOverlay(inits, IndexByCode(lines), oneMonth, SelectPlan)

	assert.Equal(t, 13.0, res.Aggregate.Get("line-SALES", jan))
	assert.Equal(t, map[string]float64{"a": 5, "b": 8}, res.Attribution["line-SALES"][jan])
}

func TestBuildOverlay_UnlinkedEntriesAreSkippedAndReported(t *testing.T) {
	lines := overlayLines()
	inits := []domain.Initiative{
		testutil.NewTestInitiative("Ghost", testutil.WithInitiativeID("g"),
			testutil.WithEntry("NOPE", map[domain.MonthKey]float64{"2025-01": 99}, nil),
			testutil.WithEntry("SALES", map[domain.MonthKey]float64{"2025-01": 1}, nil)),
	}
	res := BuildOverlay(inits, IndexByCode(lines), oneMonth, SelectPlan)

	require.Len(t, res.Unlinked, 1)
	assert.Equal(t, UnlinkedEntry{InitiativeID: "g", InitiativeName: "Ghost", LineCode: "NOPE"}, res.Unlinked[0])
	assert.Equal(t, 1.0, res.Aggregate.Get("line-SALES", jan))
	assert.Len(t, res.Aggregate, 1)
}

func TestBuildOverlay_IgnoresMonthsOutsideHorizonAndInactiveStages(t *testing.T) {
	lines := overlayLines()
	ini := testutil.NewTestInitiative("Staged", testutil.WithInitiativeID("s"),
		testutil.WithEntry("SALES", map[domain.MonthKey]float64{"2024-12": 50, "2025-01": 2}, nil))
	ini.Stages = append([]domain.Stage{{
		Name:       "L0",
		Financials: []domain.FinancialEntry{{LineCode: "SALES", Distribution: map[domain.MonthKey]float64{"2025-01": 1000}}},
	}}, ini.Stages...)

	res := BuildOverlay([]domain.Initiative{ini}, IndexByCode(lines), oneMonth, SelectPlan)
	assert.Equal(t, 2.0, res.Aggregate.Get("line-SALES", jan), "only the active stage within the horizon counts")
}

func TestIndexByCode_FirstLineWins(t *testing.T) {
	lines := []domain.LineItem{
		testutil.Revenue("DUP", testutil.WithLineID("first")),
		testutil.Cost("DUP", testutil.WithLineID("second")),
		testutil.Revenue(""),
	}
	idx := IndexByCode(lines)
	assert.Equal(t, "first", idx["DUP"].ID)
	assert.NotContains(t, idx, "")
}

func TestSelectorFor(t *testing.T) {
	_, ok := SelectorFor(domain.OverlayPlan)
	assert.True(t, ok)
	_, ok = SelectorFor(domain.OverlayActual)
	assert.True(t, ok)
	_, ok = SelectorFor(domain.OverlayBase)
	assert.False(t, ok)
}
