package importer

import (
	"fmt"

	"github.com/alexanderramin/blueprint/internal/domain"
)

const maxMonthCount = 600

var validFiscalNamings = map[string]bool{"end": true, "start": true}

// ValidateBlueprintSchema checks a blueprint schema before conversion.
// Returns a slice of all validation errors found. Repeated line codes are
// not errors; they surface as guardrail warnings.
func ValidateBlueprintSchema(schema *BlueprintSchema) []error {
	var errs []error

	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if schema.StartMonth == "" {
		errs = append(errs, fmt.Errorf("start_month is required"))
	} else if _, err := domain.ParseMonthKey(schema.StartMonth); err != nil {
		errs = append(errs, fmt.Errorf("start_month: invalid month %q (expected YYYY-MM)", schema.StartMonth))
	}
	if schema.MonthCount < 1 || schema.MonthCount > maxMonthCount {
		errs = append(errs, fmt.Errorf("month_count %d must be between 1 and %d", schema.MonthCount, maxMonthCount))
	}
	if fy := schema.FiscalYear; fy != nil {
		if fy.StartMonth < 1 || fy.StartMonth > 12 {
			errs = append(errs, fmt.Errorf("fiscal_year.start_month %d must be between 1 and 12", fy.StartMonth))
		}
		if fy.Naming != "" && !validFiscalNamings[fy.Naming] {
			errs = append(errs, fmt.Errorf("fiscal_year.naming: invalid value %q", fy.Naming))
		}
	}

	if len(schema.Lines) == 0 {
		errs = append(errs, fmt.Errorf("lines: at least one line is required"))
	}
	ids := make(map[string]bool)
	for i, l := range schema.Lines {
		errs = append(errs, validateLine(fmt.Sprintf("lines[%d]", i), l, ids)...)
	}

	ratioIDs := make(map[string]bool)
	for i, r := range schema.Ratios {
		prefix := fmt.Sprintf("ratios[%d]", i)
		if r.ID != "" {
			if ratioIDs[r.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, r.ID))
			}
			ratioIDs[r.ID] = true
		}
		if r.Numerator == "" {
			errs = append(errs, fmt.Errorf("%s.numerator is required", prefix))
		}
		if r.Denominator == "" {
			errs = append(errs, fmt.Errorf("%s.denominator is required", prefix))
		}
		if r.Format != "" && !domain.ValidRatioFormats[r.Format] {
			errs = append(errs, fmt.Errorf("%s.format: invalid value %q", prefix, r.Format))
		}
		if r.Precision != nil && (*r.Precision < 0 || *r.Precision > 4) {
			errs = append(errs, fmt.Errorf("%s.precision %d must be between 0 and 4", prefix, *r.Precision))
		}
	}

	return errs
}

func validateLine(prefix string, l LineImport, ids map[string]bool) []error {
	var errs []error

	if l.ID != "" {
		if ids[l.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, l.ID))
		}
		ids[l.ID] = true
	}
	if l.Name == "" && l.Code == "" {
		errs = append(errs, fmt.Errorf("%s: code or name is required", prefix))
	}
	if l.Indent < 0 || l.Indent > domain.MaxIndent {
		errs = append(errs, fmt.Errorf("%s.indent %d must be between 0 and %d", prefix, l.Indent, domain.MaxIndent))
	}
	if l.Nature != "" && !domain.ValidNatures[l.Nature] {
		errs = append(errs, fmt.Errorf("%s.nature: invalid value %q", prefix, l.Nature))
	}
	if l.Mode != "" && !domain.ValidModes[l.Mode] {
		errs = append(errs, fmt.Errorf("%s.mode: invalid value %q", prefix, l.Mode))
	}
	errs = append(errs, validateMonthKeys(prefix+".months", l.Months)...)
	return errs
}

// ValidateInitiativeSchema checks an initiative file before conversion.
// Unknown line codes are not errors; they surface as unlinked-entry warnings
// when the initiatives are overlaid on a blueprint.
func ValidateInitiativeSchema(schema *InitiativeFileSchema) []error {
	var errs []error

	ids := make(map[string]bool)
	for i, ini := range schema.Initiatives {
		prefix := fmt.Sprintf("initiatives[%d]", i)

		if ini.ID != "" {
			if ids[ini.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, ini.ID))
			}
			ids[ini.ID] = true
		}
		if ini.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if len(ini.Stages) == 0 {
			errs = append(errs, fmt.Errorf("%s.stages: at least one stage is required", prefix))
		}

		stageNames := make(map[string]bool)
		for j, st := range ini.Stages {
			sp := fmt.Sprintf("%s.stages[%d]", prefix, j)
			if st.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", sp))
			} else if stageNames[st.Name] {
				errs = append(errs, fmt.Errorf("%s.name: duplicate stage %q", sp, st.Name))
			}
			stageNames[st.Name] = true

			for k, e := range st.Financials {
				ep := fmt.Sprintf("%s.financials[%d]", sp, k)
				if e.LineCode == "" {
					errs = append(errs, fmt.Errorf("%s.line_code is required", ep))
				}
				errs = append(errs, validateMonthKeys(ep+".distribution", e.Distribution)...)
				errs = append(errs, validateMonthKeys(ep+".actuals", e.Actuals)...)
			}
			for k, kpi := range st.KPIs {
				kp := fmt.Sprintf("%s.kpis[%d]", sp, k)
				if kpi.Name == "" {
					errs = append(errs, fmt.Errorf("%s.name is required", kp))
				}
				errs = append(errs, validateMonthKeys(kp+".distribution", kpi.Distribution)...)
				errs = append(errs, validateMonthKeys(kp+".actuals", kpi.Actuals)...)
			}
		}

		if ini.ActiveStage != "" && len(ini.Stages) > 0 && !stageNames[ini.ActiveStage] {
			errs = append(errs, fmt.Errorf("%s.active_stage: stage %q not found", prefix, ini.ActiveStage))
		}
	}

	return errs
}

func validateMonthKeys(prefix string, months MonthAmounts) []error {
	var errs []error
	for _, k := range sortedKeys(months) {
		if _, err := domain.ParseMonthKey(k); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid month %q (expected YYYY-MM)", prefix, k))
		}
	}
	return errs
}
