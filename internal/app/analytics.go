package app

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/engine"
)

type AnalyticsErrorCode string

const (
	AnalyticsErrInvalidOverlay AnalyticsErrorCode = "INVALID_OVERLAY"
	AnalyticsErrInvalidView    AnalyticsErrorCode = "INVALID_VIEW"
	AnalyticsErrUnknownLine    AnalyticsErrorCode = "UNKNOWN_LINE"
	AnalyticsErrUnknownBucket  AnalyticsErrorCode = "UNKNOWN_BUCKET"
	AnalyticsErrInvalidPeriod  AnalyticsErrorCode = "INVALID_PERIOD"
)

type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
}

func (e *AnalyticsError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ParseOverlays parses a "+"-joined overlay selection such as "base+plan".
// Empty input selects the base overlay.
func ParseOverlays(s string) ([]domain.Overlay, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return []domain.Overlay{domain.OverlayBase}, nil
	}
	var out []domain.Overlay
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if !domain.ValidOverlays[part] {
			return nil, &AnalyticsError{Code: AnalyticsErrInvalidOverlay, Message: fmt.Sprintf("unknown overlay %q", part)}
		}
		if seen[part] {
			return nil, &AnalyticsError{Code: AnalyticsErrInvalidOverlay, Message: fmt.Sprintf("overlay %q selected twice", part)}
		}
		seen[part] = true
		out = append(out, domain.Overlay(part))
	}
	return out, nil
}

// OverlayLabel joins overlays back into their selection form.
func OverlayLabel(overlays []domain.Overlay) string {
	parts := make([]string, len(overlays))
	for i, o := range overlays {
		parts[i] = string(o)
	}
	return strings.Join(parts, "+")
}

// BlueprintRef identifies the blueprint version a response was computed from.
type BlueprintRef struct {
	ID      string
	Name    string
	Version int
}

type LinesRequest struct {
	BlueprintID string
	Overlays    []domain.Overlay
}

// LineView is one resolved line over the horizon.
type LineView struct {
	LineID  string
	Code    string
	Name    string
	Indent  int
	Depth   int
	Nature  domain.Nature
	Mode    domain.ComputationMode
	Values  []float64 // aligned with LinesResponse.Horizon
	Total   float64
	RunRate float64
}

type LinesResponse struct {
	Blueprint BlueprintRef
	Overlays  []domain.Overlay
	Horizon   []domain.MonthKey
	Period    *domain.ReportingPeriod
	Lines     []LineView
	Warnings  []engine.Warning
	CacheHit  bool
}

type ChartRequest struct {
	BlueprintID string
	LineCode    string
	View        calendar.View
	Overlays    []domain.Overlay
}

type ChartResponse struct {
	Blueprint BlueprintRef
	Line      LineView
	View      calendar.View
	Overlays  []domain.Overlay
	Points    []engine.SeriesPoint
}

type RatiosRequest struct {
	BlueprintID string
	Overlays    []domain.Overlay
}

type RatioWindowView struct {
	Window    engine.Window
	Label     string
	Value     float64
	Available bool
	Display   string
}

type RatioView struct {
	ID      string
	Label   string
	Windows []RatioWindowView
}

type RatiosResponse struct {
	Blueprint BlueprintRef
	Overlays  []domain.Overlay
	Ratios    []RatioView
}

type BreakdownRequest struct {
	BlueprintID string
	LineCode    string
	View        calendar.View
	BucketKey   string
	Overlay     domain.Overlay
}

type BreakdownResponse struct {
	Blueprint BlueprintRef
	Line      LineView
	Bucket    calendar.Bucket
	Overlay   domain.Overlay
	Result    engine.BreakdownResult
}

type GuardrailsResponse struct {
	Blueprint BlueprintRef
	Warnings  []engine.Warning
}

type KPIsResponse struct {
	Blueprint BlueprintRef
	Horizon   []domain.MonthKey
	KPIs      []engine.KPISummary
}

// NewLinesRequest returns a request for the base overlay.
func NewLinesRequest(blueprintID string) LinesRequest {
	return LinesRequest{BlueprintID: blueprintID, Overlays: []domain.Overlay{domain.OverlayBase}}
}

// NewChartRequest returns a monthly base-plus-plan chart request.
func NewChartRequest(blueprintID, lineCode string) ChartRequest {
	return ChartRequest{
		BlueprintID: blueprintID,
		LineCode:    lineCode,
		View:        calendar.ViewMonths,
		Overlays:    []domain.Overlay{domain.OverlayBase, domain.OverlayPlan},
	}
}

// NewBreakdownRequest returns a plan-overlay breakdown over monthly buckets.
func NewBreakdownRequest(blueprintID, lineCode, bucketKey string) BreakdownRequest {
	return BreakdownRequest{
		BlueprintID: blueprintID,
		LineCode:    lineCode,
		View:        calendar.ViewMonths,
		BucketKey:   bucketKey,
		Overlay:     domain.OverlayPlan,
	}
}
