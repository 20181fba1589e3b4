package domain

import (
	"fmt"
	"time"
)

// MaxIndent bounds outline nesting depth for line items.
const MaxIndent = 6

// LineItem is one row of the P&L blueprint. Position in Blueprint.Lines is
// significant: it defines both the indent hierarchy and cumulative scope.
type LineItem struct {
	ID     string
	Code   string
	Name   string
	Indent int
	Nature Nature
	Mode   ComputationMode
	Months map[MonthKey]float64 // manual lines only
}

// Normalize forces non-manual lines to the summary nature and drops their
// stored months, and clamps a negative indent to zero.
func (l *LineItem) Normalize() {
	if l.Mode == "" {
		l.Mode = ModeManual
	}
	if l.Mode != ModeManual {
		l.Nature = NatureSummary
		l.Months = nil
	}
	if l.Indent < 0 {
		l.Indent = 0
	}
}

// SignEffect returns the multiplier applied to this line's raw amounts.
func (l *LineItem) SignEffect() float64 {
	return l.Nature.SignEffect()
}

type RatioDefinition struct {
	ID              string
	Label           string
	NumeratorCode   string
	DenominatorCode string
	Format          RatioFormat
	Precision       int
}

type FiscalYearConfig struct {
	StartMonth int
	Naming     FiscalNaming
}

// DefaultFiscalYear is a calendar-aligned fiscal year.
func DefaultFiscalYear() FiscalYearConfig {
	return FiscalYearConfig{StartMonth: 1, Naming: FiscalNamedByEnd}
}

// Validate checks the fiscal start month range.
func (f FiscalYearConfig) Validate() error {
	if f.StartMonth < 1 || f.StartMonth > 12 {
		return fmt.Errorf("fiscal start month %d must be between 1 and 12", f.StartMonth)
	}
	if f.Naming != "" && f.Naming != FiscalNamedByEnd && f.Naming != FiscalNamedByStart {
		return fmt.Errorf("fiscal naming %q must be %q or %q", f.Naming, FiscalNamedByEnd, FiscalNamedByStart)
	}
	return nil
}

// Blueprint is the versioned P&L document.
type Blueprint struct {
	ID         string
	Name       string
	Version    int
	StartMonth MonthKey
	MonthCount int
	FiscalYear FiscalYearConfig
	Ratios     []RatioDefinition
	Lines      []LineItem
	UpdatedAt  time.Time
}

// Horizon returns the configured contiguous month range.
func (b *Blueprint) Horizon() []MonthKey {
	return MonthRange(b.StartMonth, b.MonthCount)
}

// LineByCode returns the first line carrying code.
func (b *Blueprint) LineByCode(code string) (*LineItem, bool) {
	for i := range b.Lines {
		if b.Lines[i].Code == code {
			return &b.Lines[i], true
		}
	}
	return nil, false
}

// DisplayID returns a short identifier for display.
func (b *Blueprint) DisplayID() string {
	if len(b.ID) >= 8 {
		return b.ID[:8]
	}
	return b.ID
}
