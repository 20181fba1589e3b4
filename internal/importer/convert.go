package importer

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/google/uuid"
)

// ConvertStats reports adjustments made while converting.
type ConvertStats struct {
	// NonFinite counts cells that were non-numeric or infinite and were
	// stored as zero.
	NonFinite int
}

// ConvertBlueprint transforms a validated BlueprintSchema into a domain
// blueprint. Missing IDs are generated. Call ValidateBlueprintSchema first.
func ConvertBlueprint(schema *BlueprintSchema) (*domain.Blueprint, ConvertStats) {
	var stats ConvertStats
	start, _ := domain.ParseMonthKey(schema.StartMonth)

	fiscal := domain.DefaultFiscalYear()
	if schema.FiscalYear != nil {
		fiscal.StartMonth = schema.FiscalYear.StartMonth
		if schema.FiscalYear.Naming != "" {
			fiscal.Naming = domain.FiscalNaming(schema.FiscalYear.Naming)
		}
	}

	bp := &domain.Blueprint{
		ID:         domain.CoalesceStr(schema.ID, uuid.New().String()),
		Name:       schema.Name,
		StartMonth: start,
		MonthCount: schema.MonthCount,
		FiscalYear: fiscal,
		Lines:      make([]domain.LineItem, 0, len(schema.Lines)),
		UpdatedAt:  time.Now().UTC(),
	}

	for _, l := range schema.Lines {
		mode := domain.ComputationMode(domain.CoalesceStr(l.Mode, string(domain.ModeManual)))
		line := domain.LineItem{
			ID:     domain.CoalesceStr(l.ID, uuid.New().String()),
			Code:   l.Code,
			Name:   domain.CoalesceStr(l.Name, l.Code),
			Indent: l.Indent,
			Nature: domain.Nature(domain.CoalesceStr(l.Nature, string(domain.NatureRevenue))),
			Mode:   mode,
		}
		if mode == domain.ModeManual {
			line.Months = convertMonths(l.Months, &stats)
		}
		line.Normalize()
		bp.Lines = append(bp.Lines, line)
	}

	for _, r := range schema.Ratios {
		bp.Ratios = append(bp.Ratios, domain.RatioDefinition{
			ID:              domain.CoalesceStr(r.ID, uuid.New().String()),
			Label:           domain.CoalesceStr(r.Label, r.Numerator+" / "+r.Denominator),
			NumeratorCode:   r.Numerator,
			DenominatorCode: r.Denominator,
			Format:          domain.RatioFormat(domain.CoalesceStr(r.Format, string(domain.FormatPercentage))),
			Precision:       domain.IntFromPtrWithDefault(1, r.Precision),
		})
	}

	return bp, stats
}

// ConvertInitiatives transforms a validated InitiativeFileSchema into domain
// initiatives. The active stage defaults to the last stage.
func ConvertInitiatives(schema *InitiativeFileSchema) ([]domain.Initiative, ConvertStats) {
	var stats ConvertStats
	now := time.Now().UTC()

	out := make([]domain.Initiative, 0, len(schema.Initiatives))
	for _, ini := range schema.Initiatives {
		converted := domain.Initiative{
			ID:          domain.CoalesceStr(ini.ID, uuid.New().String()),
			Name:        ini.Name,
			ActiveStage: ini.ActiveStage,
			Stages:      make([]domain.Stage, 0, len(ini.Stages)),
			UpdatedAt:   now,
		}
		for _, st := range ini.Stages {
			stage := domain.Stage{Name: st.Name}
			for _, e := range st.Financials {
				stage.Financials = append(stage.Financials, domain.FinancialEntry{
					LineCode:     e.LineCode,
					Distribution: convertMonths(e.Distribution, &stats),
					Actuals:      convertMonths(e.Actuals, &stats),
				})
			}
			for _, k := range st.KPIs {
				stage.KPIs = append(stage.KPIs, domain.KPI{
					Name:         k.Name,
					Unit:         k.Unit,
					Baseline:     finite(float64(k.Baseline), &stats),
					Distribution: convertMonths(k.Distribution, &stats),
					Actuals:      convertMonths(k.Actuals, &stats),
				})
			}
			converted.Stages = append(converted.Stages, stage)
		}
		if converted.ActiveStage == "" && len(converted.Stages) > 0 {
			converted.ActiveStage = converted.Stages[len(converted.Stages)-1].Name
		}
		out = append(out, converted)
	}
	return out, stats
}

func convertMonths(months MonthAmounts, stats *ConvertStats) map[domain.MonthKey]float64 {
	if len(months) == 0 {
		return nil
	}
	out := make(map[domain.MonthKey]float64, len(months))
	for _, k := range sortedKeys(months) {
		mk, err := domain.ParseMonthKey(k)
		if err != nil {
			continue
		}
		out[mk] += finite(float64(months[k]), stats)
	}
	return out
}

func finite(v float64, stats *ConvertStats) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		stats.NonFinite++
		return 0
	}
	return v
}

func sortedKeys(m MonthAmounts) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
