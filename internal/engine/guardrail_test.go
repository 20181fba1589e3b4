package engine

import (
	"testing"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codesOf(warnings []Warning, code WarningCode) []Warning {
	var out []Warning
	for _, w := range warnings {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

func TestCheckGuardrails_CleanBlueprint(t *testing.T) {
	lines := []domain.LineItem{
		testutil.RollUp("TOTAL"),
		testutil.Revenue("A", testutil.WithIndent(1)),
		testutil.Revenue("B", testutil.WithIndent(1)),
		testutil.Subtotal("NET"),
	}
	assert.Empty(t, CheckGuardrails(lines, nil, nil, 0))
}

func TestCheckGuardrails_OrphanRollupReportedOnce(t *testing.T) {
	lines := []domain.LineItem{
		testutil.RollUp("LONELY"),
		testutil.Revenue("NEXT"),
	}
	warnings := CheckGuardrails(lines, BuildHierarchy(lines), nil, 0)
	orphans := codesOf(warnings, WarnOrphanRollup)
	require.Len(t, orphans, 1)
	assert.Equal(t, "line-LONELY", orphans[0].LineID)
	assert.Equal(t, "LONELY", orphans[0].LineCode)
}

func TestCheckGuardrails_DuplicateCodes(t *testing.T) {
	lines := []domain.LineItem{
		testutil.Revenue("X", testutil.WithLineID("x1")),
		testutil.Revenue("Y"),
		testutil.Revenue("X", testutil.WithLineID("x2")),
		testutil.Revenue("X", testutil.WithLineID("x3")),
		testutil.Revenue("Y", testutil.WithLineID("y2")),
	}
	dups := codesOf(CheckGuardrails(lines, nil, nil, 0), WarnDuplicateCode)
	require.Len(t, dups, 2)
	assert.Equal(t, "X", dups[0].LineCode)
	assert.Contains(t, dups[0].Message, "3 lines")
	assert.Equal(t, "Y", dups[1].LineCode)
}

func TestCheckGuardrails_IndentSkip(t *testing.T) {
	lines := []domain.LineItem{
		testutil.RollUp("TOP"),
		testutil.Revenue("DEEP", testutil.WithIndent(2)),
		testutil.Revenue("OK", testutil.WithIndent(1)),
	}
	skips := codesOf(CheckGuardrails(lines, nil, nil, 0), WarnIndentSkip)
	require.Len(t, skips, 1)
	assert.Equal(t, "DEEP", skips[0].LineCode)
	assert.Equal(t, `line "DEEP" jumps from indent 0 to 2`, skips[0].Message)
}

func TestCheckGuardrails_FirstLineIndented(t *testing.T) {
	lines := []domain.LineItem{testutil.Revenue("A", testutil.WithIndent(1))}
	skips := codesOf(CheckGuardrails(lines, nil, nil, 0), WarnIndentSkip)
	require.Len(t, skips, 1)
	assert.Equal(t, `first line "A" starts at indent 1`, skips[0].Message)
}

func TestCheckGuardrails_UnlinkedAndNonFinite(t *testing.T) {
	unlinked := []UnlinkedEntry{
		{InitiativeID: "i1", InitiativeName: "Pricing", LineCode: "GHOST"},
		{InitiativeID: "i2", LineCode: "PHANTOM"},
	}
	warnings := CheckGuardrails(nil, nil, unlinked, 3)

	links := codesOf(warnings, WarnUnlinkedEntry)
	require.Len(t, links, 2)
	assert.Equal(t, "i1", links[0].InitiativeID)
	assert.Contains(t, links[0].Message, "Pricing")
	assert.Contains(t, links[1].Message, "i2", "falls back to the initiative ID when unnamed")

	nonFinite := codesOf(warnings, WarnNonFiniteValue)
	require.Len(t, nonFinite, 1)
	assert.Contains(t, nonFinite[0].Message, "3")
}
