package engine

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Input is everything a computation reads.
type Input struct {
	Blueprint   *domain.Blueprint
	Initiatives []domain.Initiative
	Period      *domain.ReportingPeriod
	// Horizon overrides the derived timeline when non-empty.
	Horizon []domain.MonthKey
}

// Result holds the three independent resolved maps over one line/month grid
// plus everything the ratio, chart and breakdown views need.
type Result struct {
	Lines     []domain.LineItem
	Horizon   []domain.MonthKey
	Hierarchy *Hierarchy
	Codes     CodeIndex
	Fiscal    domain.FiscalYearConfig
	Period    *domain.ReportingPeriod

	Base   ValueMap
	Plan   ValueMap
	Actual ValueMap

	PlanOverlay   OverlayResult
	ActualOverlay OverlayResult
	Warnings      []Warning
}

// Compute resolves the blueprint three times, once per manual source: the
// blueprint's own values, the initiative plan overlay and the initiative
// actual overlay. The passes share no mutable state and run in parallel.
func Compute(in Input) (*Result, error) {
	if in.Blueprint == nil {
		return nil, errors.New("blueprint is required")
	}
	bp := in.Blueprint

	lines := make([]domain.LineItem, len(bp.Lines))
	copy(lines, bp.Lines)
	for i := range lines {
		lines[i].Normalize()
	}

	fiscal := bp.FiscalYear
	if fiscal.StartMonth == 0 {
		fiscal = domain.DefaultFiscalYear()
	}
	if err := fiscal.Validate(); err != nil {
		return nil, fmt.Errorf("blueprint fiscal year: %w", err)
	}

	horizon := in.Horizon
	if len(horizon) == 0 {
		horizon = calendar.Timeline(observedMonths(bp, lines, in.Initiatives), in.Period)
	}

	res := &Result{
		Lines:     lines,
		Horizon:   horizon,
		Hierarchy: BuildHierarchy(lines),
		Codes:     IndexByCode(lines),
		Fiscal:    fiscal,
		Period:    in.Period,
	}

	var baseNonFinite int
	var g errgroup.Group
	g.Go(func() error {
		var src ValueMap
		src, baseNonFinite = BaseSource(lines, horizon)
		res.Base = Resolve(lines, horizon, res.Hierarchy, src)
		return nil
	})
	g.Go(func() error {
		res.PlanOverlay = BuildOverlay(in.Initiatives, res.Codes, horizon, SelectPlan)
		res.Plan = Resolve(lines, horizon, res.Hierarchy, res.PlanOverlay.Aggregate)
		return nil
	})
	g.Go(func() error {
		res.ActualOverlay = BuildOverlay(in.Initiatives, res.Codes, horizon, SelectActual)
		res.Actual = Resolve(lines, horizon, res.Hierarchy, res.ActualOverlay.Aggregate)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nonFinite := baseNonFinite + res.PlanOverlay.NonFinite + res.ActualOverlay.NonFinite
	res.Warnings = CheckGuardrails(lines, res.Hierarchy, res.PlanOverlay.Unlinked, nonFinite)
	return res, nil
}

// Values returns the additive combination of the requested overlays.
func (r *Result) Values(overlays ...domain.Overlay) ValueMap {
	maps := make([]ValueMap, 0, len(overlays))
	for _, o := range overlays {
		if vm := r.valuesFor(o); vm != nil {
			maps = append(maps, vm)
		}
	}
	return Combine(maps...)
}

func (r *Result) valuesFor(o domain.Overlay) ValueMap {
	switch o {
	case domain.OverlayBase:
		return r.Base
	case domain.OverlayPlan:
		return r.Plan
	case domain.OverlayActual:
		return r.Actual
	default:
		return nil
	}
}

// Layers returns the requested overlays as chart layers in order.
func (r *Result) Layers(overlays ...domain.Overlay) []Layer {
	layers := make([]Layer, 0, len(overlays))
	for _, o := range overlays {
		if vm := r.valuesFor(o); vm != nil {
			layers = append(layers, Layer{Overlay: o, Values: vm})
		}
	}
	return layers
}

// Attribution returns the per-initiative attribution of an initiative overlay.
func (r *Result) Attribution(o domain.Overlay) (Attribution, bool) {
	switch o {
	case domain.OverlayPlan:
		return r.PlanOverlay.Attribution, true
	case domain.OverlayActual:
		return r.ActualOverlay.Attribution, true
	default:
		return nil, false
	}
}

// Buckets partitions the result horizon for a chart view.
func (r *Result) Buckets(view calendar.View) ([]calendar.Bucket, error) {
	return calendar.Buckets(r.Horizon, view, r.Fiscal)
}

// RatioContext returns the context used to evaluate blueprint ratios.
func (r *Result) RatioContext() RatioContext {
	return RatioContext{Codes: r.Codes, Horizon: r.Horizon, Fiscal: r.Fiscal, Period: r.Period}
}

func observedMonths(bp *domain.Blueprint, lines []domain.LineItem, initiatives []domain.Initiative) []domain.MonthKey {
	months := bp.Horizon()
	for _, l := range lines {
		for m := range l.Months {
			months = append(months, m)
		}
	}
	for i := range initiatives {
		stage := initiatives[i].Active()
		if stage == nil {
			continue
		}
		for _, e := range stage.Financials {
			for m := range e.Distribution {
				months = append(months, m)
			}
			for m := range e.Actuals {
				months = append(months, m)
			}
		}
	}
	return months
}
