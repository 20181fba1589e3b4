package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/blueprint/internal/app"
	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/engine"
	"github.com/alexanderramin/blueprint/internal/repository"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultCacheTTL     = 15 * time.Minute
	DefaultCacheCleanup = 30 * time.Minute
)

// NewResultCache returns a cache for computed results.
func NewResultCache(ttl, cleanup time.Duration) *cache.Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCacheCleanup
	}
	return cache.New(ttl, cleanup)
}

type analyticsService struct {
	blueprints  repository.BlueprintRepo
	initiatives repository.InitiativeRepo
	versions    repository.CollectionVersionRepo
	settings    repository.SettingsRepo
	results     *cache.Cache
	observer    UseCaseObserver
}

// NewAnalyticsService wires the analytics use cases. A nil results cache
// gets the default expiry.
func NewAnalyticsService(
	blueprints repository.BlueprintRepo,
	initiatives repository.InitiativeRepo,
	versions repository.CollectionVersionRepo,
	settings repository.SettingsRepo,
	results *cache.Cache,
	observers ...UseCaseObserver,
) AnalyticsService {
	if results == nil {
		results = NewResultCache(0, 0)
	}
	return &analyticsService{
		blueprints:  blueprints,
		initiatives: initiatives,
		versions:    versions,
		settings:    settings,
		results:     results,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// computed is a cached engine result together with the documents it was
// computed from.
type computed struct {
	blueprint   *domain.Blueprint
	initiatives []domain.Initiative
	result      *engine.Result
}

func (c *computed) ref() app.BlueprintRef {
	return app.BlueprintRef{ID: c.blueprint.ID, Name: c.blueprint.Name, Version: c.blueprint.Version}
}

// collectionVersions are the change counters a computed result depends on.
type collectionVersions struct {
	blueprints  int
	initiatives int
}

// resultKey identifies one computation. Any blueprint import or delete, any
// initiative write or a reporting-period change yields a new key, so stale
// entries are never read and simply expire.
func resultKey(bp *domain.Blueprint, v collectionVersions, period *domain.ReportingPeriod) string {
	p := "-"
	if period != nil {
		p = string(period.MonthKey())
	}
	return fmt.Sprintf("%s|bp=%d|cat=%d|ini=%d|h=%s+%d|fy=%d/%s|p=%s",
		bp.ID, bp.Version, v.blueprints, v.initiatives, bp.StartMonth, bp.MonthCount,
		bp.FiscalYear.StartMonth, bp.FiscalYear.Naming, p)
}

func (s *analyticsService) compute(ctx context.Context, blueprintID string, fields map[string]any) (*computed, error) {
	bp, err := s.blueprints.Get(ctx, blueprintID)
	if err != nil {
		return nil, fmt.Errorf("loading blueprint: %w", err)
	}
	var versions collectionVersions
	if versions.blueprints, err = s.versions.Current(ctx, repository.CollectionBlueprints); err != nil {
		return nil, err
	}
	if versions.initiatives, err = s.versions.Current(ctx, repository.CollectionInitiatives); err != nil {
		return nil, err
	}
	period, err := s.settings.GetPeriod(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading reporting period: %w", err)
	}

	key := resultKey(bp, versions, period)
	if v, ok := s.results.Get(key); ok {
		fields["cache_hit"] = true
		return v.(*computed), nil
	}
	fields["cache_hit"] = false

	initiatives, err := s.initiatives.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading initiatives: %w", err)
	}
	res, err := engine.Compute(engine.Input{Blueprint: bp, Initiatives: initiatives, Period: period})
	if err != nil {
		return nil, err
	}
	c := &computed{blueprint: bp, initiatives: initiatives, result: res}
	s.results.Set(key, c, cache.DefaultExpiration)
	return c, nil
}

func (s *analyticsService) Lines(ctx context.Context, req app.LinesRequest) (resp *app.LinesResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blueprint": req.BlueprintID}
	defer observe(ctx, s.observer, "lines", startedAt, fields, &err)

	overlays, err := overlaysOrBase(req.Overlays)
	if err != nil {
		return nil, err
	}
	c, err := s.compute(ctx, req.BlueprintID, fields)
	if err != nil {
		return nil, err
	}

	values := c.result.Values(overlays...)
	views := make([]app.LineView, 0, len(c.result.Lines))
	for _, l := range c.result.Lines {
		views = append(views, lineView(c.result, values, l))
	}
	fields["lines"] = len(views)
	fields["warnings"] = len(c.result.Warnings)

	return &app.LinesResponse{
		Blueprint: c.ref(),
		Overlays:  overlays,
		Horizon:   c.result.Horizon,
		Period:    c.result.Period,
		Lines:     views,
		Warnings:  c.result.Warnings,
		CacheHit:  fields["cache_hit"] == true,
	}, nil
}

func (s *analyticsService) Chart(ctx context.Context, req app.ChartRequest) (resp *app.ChartResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blueprint": req.BlueprintID, "line": req.LineCode, "view": string(req.View)}
	defer observe(ctx, s.observer, "chart", startedAt, fields, &err)

	overlays, err := overlaysOrBase(req.Overlays)
	if err != nil {
		return nil, err
	}
	c, err := s.compute(ctx, req.BlueprintID, fields)
	if err != nil {
		return nil, err
	}
	line, err := lookupLine(c.result, req.LineCode)
	if err != nil {
		return nil, err
	}
	buckets, err := bucketsFor(c.result, req.View)
	if err != nil {
		return nil, err
	}

	points := engine.ChartSeries(line.ID, buckets, c.result.Layers(overlays...))
	fields["points"] = len(points)
	return &app.ChartResponse{
		Blueprint: c.ref(),
		Line:      lineView(c.result, c.result.Values(overlays...), line),
		View:      buckets[0].View,
		Overlays:  overlays,
		Points:    points,
	}, nil
}

// Ratios evaluates blueprint ratios over the combined overlays. A ratio
// whose codes are missing or whose denominator is zero is reported as
// unavailable without failing the request.
func (s *analyticsService) Ratios(ctx context.Context, req app.RatiosRequest) (resp *app.RatiosResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blueprint": req.BlueprintID}
	defer observe(ctx, s.observer, "ratios", startedAt, fields, &err)

	overlays, err := overlaysOrBase(req.Overlays)
	if err != nil {
		return nil, err
	}
	c, err := s.compute(ctx, req.BlueprintID, fields)
	if err != nil {
		return nil, err
	}

	results := engine.EvaluateRatios(c.blueprint.Ratios, c.result.Values(overlays...), c.result.RatioContext())
	views := make([]app.RatioView, 0, len(results))
	unavailable := 0
	for _, r := range results {
		v := app.RatioView{ID: r.Definition.ID, Label: r.Definition.Label}
		for _, w := range r.Windows {
			if !w.Available {
				unavailable++
			}
			v.Windows = append(v.Windows, app.RatioWindowView{
				Window:    w.Window,
				Label:     w.Label,
				Value:     w.Value,
				Available: w.Available,
				Display:   engine.FormatRatio(w, r.Definition),
			})
		}
		views = append(views, v)
	}
	fields["ratios"] = len(views)
	fields["unavailable"] = unavailable

	return &app.RatiosResponse{Blueprint: c.ref(), Overlays: overlays, Ratios: views}, nil
}

func (s *analyticsService) Breakdown(ctx context.Context, req app.BreakdownRequest) (resp *app.BreakdownResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blueprint": req.BlueprintID, "line": req.LineCode, "bucket": req.BucketKey}
	defer observe(ctx, s.observer, "breakdown", startedAt, fields, &err)

	overlay := req.Overlay
	if overlay == "" {
		overlay = domain.OverlayPlan
	}
	c, err := s.compute(ctx, req.BlueprintID, fields)
	if err != nil {
		return nil, err
	}
	attr, ok := c.result.Attribution(overlay)
	if !ok {
		return nil, &app.AnalyticsError{
			Code:    app.AnalyticsErrInvalidOverlay,
			Message: fmt.Sprintf("breakdown needs an initiative overlay (plan or actual), got %q", overlay),
		}
	}
	line, err := lookupLine(c.result, req.LineCode)
	if err != nil {
		return nil, err
	}
	buckets, err := bucketsFor(c.result, req.View)
	if err != nil {
		return nil, err
	}
	bucket, ok := calendar.FindBucket(buckets, req.BucketKey)
	if !ok {
		return nil, &app.AnalyticsError{
			Code:    app.AnalyticsErrUnknownBucket,
			Message: fmt.Sprintf("no %s bucket %q in the horizon", buckets[0].View, req.BucketKey),
		}
	}

	names := make(map[string]string, len(c.initiatives))
	for _, ini := range c.initiatives {
		names[ini.ID] = ini.Name
	}

	result := engine.Breakdown(attr, line.ID, bucket.Months, names)
	fields["rows"] = len(result.Rows)
	return &app.BreakdownResponse{
		Blueprint: c.ref(),
		Line:      lineView(c.result, c.result.Values(overlay), line),
		Bucket:    bucket,
		Overlay:   overlay,
		Result:    result,
	}, nil
}

func (s *analyticsService) Guardrails(ctx context.Context, blueprintID string) (resp *app.GuardrailsResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blueprint": blueprintID}
	defer observe(ctx, s.observer, "guardrails", startedAt, fields, &err)

	c, err := s.compute(ctx, blueprintID, fields)
	if err != nil {
		return nil, err
	}
	fields["warnings"] = len(c.result.Warnings)
	return &app.GuardrailsResponse{Blueprint: c.ref(), Warnings: c.result.Warnings}, nil
}

func (s *analyticsService) KPIs(ctx context.Context, blueprintID string) (resp *app.KPIsResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blueprint": blueprintID}
	defer observe(ctx, s.observer, "kpis", startedAt, fields, &err)

	c, err := s.compute(ctx, blueprintID, fields)
	if err != nil {
		return nil, err
	}
	kpis := engine.SummarizeKPIs(c.initiatives, c.result.Horizon)
	fields["kpis"] = len(kpis)
	return &app.KPIsResponse{Blueprint: c.ref(), Horizon: c.result.Horizon, KPIs: kpis}, nil
}

func overlaysOrBase(overlays []domain.Overlay) ([]domain.Overlay, error) {
	if len(overlays) == 0 {
		return []domain.Overlay{domain.OverlayBase}, nil
	}
	seen := make(map[domain.Overlay]bool, len(overlays))
	for _, o := range overlays {
		if !domain.ValidOverlays[string(o)] || seen[o] {
			return nil, &app.AnalyticsError{Code: app.AnalyticsErrInvalidOverlay, Message: fmt.Sprintf("invalid overlay selection %q", app.OverlayLabel(overlays))}
		}
		seen[o] = true
	}
	return overlays, nil
}

func lookupLine(res *engine.Result, code string) (domain.LineItem, error) {
	l, ok := res.Codes[code]
	if !ok {
		return domain.LineItem{}, &app.AnalyticsError{Code: app.AnalyticsErrUnknownLine, Message: fmt.Sprintf("no line with code %q", code)}
	}
	return l, nil
}

// bucketsFor partitions the horizon, defaulting to monthly buckets. The
// returned slice is never empty.
func bucketsFor(res *engine.Result, view calendar.View) ([]calendar.Bucket, error) {
	if view == "" {
		view = calendar.ViewMonths
	}
	if !calendar.ValidViews[string(view)] {
		return nil, &app.AnalyticsError{Code: app.AnalyticsErrInvalidView, Message: fmt.Sprintf("unknown view %q", view)}
	}
	buckets, err := res.Buckets(view)
	if err != nil {
		return nil, &app.AnalyticsError{Code: app.AnalyticsErrInvalidView, Message: err.Error()}
	}
	if len(buckets) == 0 {
		return nil, &app.AnalyticsError{Code: app.AnalyticsErrUnknownBucket, Message: "the horizon is empty"}
	}
	return buckets, nil
}

func lineView(res *engine.Result, values engine.ValueMap, l domain.LineItem) app.LineView {
	v := app.LineView{
		LineID:  l.ID,
		Code:    l.Code,
		Name:    l.Name,
		Indent:  l.Indent,
		Depth:   res.Hierarchy.Depth(l.ID),
		Nature:  l.Nature,
		Mode:    l.Mode,
		Values:  make([]float64, len(res.Horizon)),
		RunRate: engine.RunRate(values, l.ID, res.Horizon),
	}
	for i, m := range res.Horizon {
		v.Values[i] = values.Get(l.ID, m)
		v.Total += v.Values[i]
	}
	return v
}
