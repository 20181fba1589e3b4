package domain

type Nature string

const (
	NatureRevenue Nature = "revenue"
	NatureCost    Nature = "cost"
	NatureSummary Nature = "summary"
)

// SignEffect is the multiplier applied to stored magnitudes before aggregation.
// Summary lines have no intrinsic sign and pass amounts through unchanged.
func (n Nature) SignEffect() float64 {
	if n == NatureCost {
		return -1
	}
	return 1
}

type ComputationMode string

const (
	ModeManual     ComputationMode = "manual"
	ModeChildren   ComputationMode = "children"
	ModeCumulative ComputationMode = "cumulative"
)

type RatioFormat string

const (
	FormatPercentage RatioFormat = "percentage"
	FormatMultiple   RatioFormat = "multiple"
)

type Overlay string

const (
	OverlayBase   Overlay = "base"
	OverlayPlan   Overlay = "plan"
	OverlayActual Overlay = "actual"
)

// FiscalNaming selects which calendar year a fiscal year is named after.
type FiscalNaming string

const (
	FiscalNamedByEnd   FiscalNaming = "end"
	FiscalNamedByStart FiscalNaming = "start"
)

// ValidNatures is the canonical set of accepted nature strings.
var ValidNatures = map[string]bool{
	"revenue": true, "cost": true, "summary": true,
}

// ValidModes is the canonical set of accepted computation mode strings.
var ValidModes = map[string]bool{
	"manual": true, "children": true, "cumulative": true,
}

// ValidRatioFormats is the canonical set of accepted ratio format strings.
var ValidRatioFormats = map[string]bool{
	"percentage": true, "multiple": true,
}

// ValidOverlays is the canonical set of accepted overlay strings.
var ValidOverlays = map[string]bool{
	"base": true, "plan": true, "actual": true,
}
