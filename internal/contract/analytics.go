package contract

import (
	"github.com/alexanderramin/blueprint/internal/app"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/engine"
)

type LinesRequest = app.LinesRequest

func NewLinesRequest(blueprintID string) LinesRequest {
	return app.NewLinesRequest(blueprintID)
}

type ChartRequest = app.ChartRequest

func NewChartRequest(blueprintID, lineCode string) ChartRequest {
	return app.NewChartRequest(blueprintID, lineCode)
}

type BreakdownRequest = app.BreakdownRequest

func NewBreakdownRequest(blueprintID, lineCode, bucketKey string) BreakdownRequest {
	return app.NewBreakdownRequest(blueprintID, lineCode, bucketKey)
}

type RatiosRequest = app.RatiosRequest

type BlueprintRef = app.BlueprintRef

type LineView = app.LineView

type LinesResponse = app.LinesResponse

type ChartResponse = app.ChartResponse

type RatioWindowView = app.RatioWindowView

type RatioView = app.RatioView

type RatiosResponse = app.RatiosResponse

type BreakdownResponse = app.BreakdownResponse

type GuardrailsResponse = app.GuardrailsResponse

type KPIsResponse = app.KPIsResponse

type AnalyticsErrorCode = app.AnalyticsErrorCode

const (
	AnalyticsErrInvalidOverlay AnalyticsErrorCode = app.AnalyticsErrInvalidOverlay
	AnalyticsErrInvalidView    AnalyticsErrorCode = app.AnalyticsErrInvalidView
	AnalyticsErrUnknownLine    AnalyticsErrorCode = app.AnalyticsErrUnknownLine
	AnalyticsErrUnknownBucket  AnalyticsErrorCode = app.AnalyticsErrUnknownBucket
	AnalyticsErrInvalidPeriod  AnalyticsErrorCode = app.AnalyticsErrInvalidPeriod
)

type AnalyticsError = app.AnalyticsError

type BlueprintImportResult = app.BlueprintImportResult

type InitiativeImportResult = app.InitiativeImportResult

type Warning = engine.Warning

type SeriesPoint = engine.SeriesPoint

type BreakdownRow = engine.BreakdownRow

type KPISummary = engine.KPISummary

// ParseOverlays parses a "+"-joined overlay selection such as "base+plan".
func ParseOverlays(s string) ([]domain.Overlay, error) {
	return app.ParseOverlays(s)
}

func OverlayLabel(overlays []domain.Overlay) string {
	return app.OverlayLabel(overlays)
}
