package engine

import (
	"fmt"

	"github.com/alexanderramin/blueprint/internal/domain"
)

type WarningCode string

const (
	WarnOrphanRollup   WarningCode = "ORPHAN_ROLLUP"
	WarnDuplicateCode  WarningCode = "DUPLICATE_CODE"
	WarnIndentSkip     WarningCode = "INDENT_SKIP"
	WarnUnlinkedEntry  WarningCode = "UNLINKED_ENTRY"
	WarnNonFiniteValue WarningCode = "NON_FINITE_VALUE"
)

// Warning is a data-quality signal. Warnings never stop a computation.
type Warning struct {
	Code         WarningCode
	LineID       string
	LineCode     string
	InitiativeID string
	Message      string
}

// CheckGuardrails reports structural and data-quality issues in a blueprint
// and its overlays.
func CheckGuardrails(lines []domain.LineItem, h *Hierarchy, unlinked []UnlinkedEntry, nonFinite int) []Warning {
	if h == nil || len(h.ids) != len(lines) {
		h = BuildHierarchy(lines)
	}
	var warnings []Warning

	prevIndent := -1
	for i, l := range lines {
		if l.Indent > prevIndent+1 {
			msg := fmt.Sprintf("line %q jumps from indent %d to %d", l.Code, prevIndent, l.Indent)
			if i == 0 {
				msg = fmt.Sprintf("first line %q starts at indent %d", l.Code, l.Indent)
			}
			warnings = append(warnings, Warning{
				Code:     WarnIndentSkip,
				LineID:   l.ID,
				LineCode: l.Code,
				Message:  msg,
			})
		}
		prevIndent = l.Indent

		if l.Mode == domain.ModeChildren && len(h.childPositions(i)) == 0 {
			warnings = append(warnings, Warning{
				Code:     WarnOrphanRollup,
				LineID:   l.ID,
				LineCode: l.Code,
				Message:  fmt.Sprintf("roll-up line %q has no children and resolves to zero", l.Code),
			})
		}
	}

	counts := make(map[string]int)
	var order []string
	for _, l := range lines {
		if l.Code == "" {
			continue
		}
		if counts[l.Code] == 0 {
			order = append(order, l.Code)
		}
		counts[l.Code]++
	}
	for _, code := range order {
		if counts[code] > 1 {
			warnings = append(warnings, Warning{
				Code:     WarnDuplicateCode,
				LineCode: code,
				Message:  fmt.Sprintf("code %q is used by %d lines; initiative and ratio joins use the first", code, counts[code]),
			})
		}
	}

	for _, u := range unlinked {
		warnings = append(warnings, Warning{
			Code:         WarnUnlinkedEntry,
			LineCode:     u.LineCode,
			InitiativeID: u.InitiativeID,
			Message:      fmt.Sprintf("initiative %q references unknown line code %q", domain.CoalesceStr(u.InitiativeName, u.InitiativeID), u.LineCode),
		})
	}

	if nonFinite > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnNonFiniteValue,
			Message: fmt.Sprintf("%d non-numeric values were treated as zero", nonFinite),
		})
	}
	return warnings
}
