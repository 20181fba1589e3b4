package testutil

import (
	"time"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/google/uuid"
)

// Line options
type LineOption func(*domain.LineItem)

func WithIndent(n int) LineOption {
	return func(l *domain.LineItem) {
		l.Indent = n
	}
}

func WithNature(n domain.Nature) LineOption {
	return func(l *domain.LineItem) {
		l.Nature = n
	}
}

func WithMode(m domain.ComputationMode) LineOption {
	return func(l *domain.LineItem) {
		l.Mode = m
		if m != domain.ModeManual {
			l.Nature = domain.NatureSummary
		}
	}
}

// WithMonths sets the manual values of a line.
func WithMonths(values map[domain.MonthKey]float64) LineOption {
	return func(l *domain.LineItem) {
		l.Months = values
	}
}

// WithAmount sets a single manual month value.
func WithAmount(m domain.MonthKey, v float64) LineOption {
	return func(l *domain.LineItem) {
		if l.Months == nil {
			l.Months = make(map[domain.MonthKey]float64)
		}
		l.Months[m] = v
	}
}

// WithLineID overrides the generated line ID.
func WithLineID(id string) LineOption {
	return func(l *domain.LineItem) {
		l.ID = id
	}
}

// NewTestLine returns a manual revenue line with the given code.
func NewTestLine(code string, opts ...LineOption) domain.LineItem {
	l := domain.LineItem{
		ID:     "line-" + code,
		Code:   code,
		Name:   code,
		Nature: domain.NatureRevenue,
		Mode:   domain.ModeManual,
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// Revenue, Cost, RollUp and Subtotal are shorthands for the common line shapes.
func Revenue(code string, opts ...LineOption) domain.LineItem {
	return NewTestLine(code, append([]LineOption{WithNature(domain.NatureRevenue)}, opts...)...)
}

func Cost(code string, opts ...LineOption) domain.LineItem {
	return NewTestLine(code, append([]LineOption{WithNature(domain.NatureCost)}, opts...)...)
}

func RollUp(code string, opts ...LineOption) domain.LineItem {
	return NewTestLine(code, append([]LineOption{WithMode(domain.ModeChildren)}, opts...)...)
}

func Subtotal(code string, opts ...LineOption) domain.LineItem {
	return NewTestLine(code, append([]LineOption{WithMode(domain.ModeCumulative)}, opts...)...)
}

// Blueprint options
type BlueprintOption func(*domain.Blueprint)

func WithHorizon(start domain.MonthKey, count int) BlueprintOption {
	return func(b *domain.Blueprint) {
		b.StartMonth = start
		b.MonthCount = count
	}
}

func WithFiscalStart(month int) BlueprintOption {
	return func(b *domain.Blueprint) {
		b.FiscalYear = domain.FiscalYearConfig{StartMonth: month, Naming: domain.FiscalNamedByEnd}
	}
}

func WithRatios(ratios ...domain.RatioDefinition) BlueprintOption {
	return func(b *domain.Blueprint) {
		b.Ratios = ratios
	}
}

// NewTestBlueprint returns a blueprint starting 2025-01 with a 12-month horizon.
func NewTestBlueprint(name string, lines []domain.LineItem, opts ...BlueprintOption) *domain.Blueprint {
	b := &domain.Blueprint{
		ID:         uuid.New().String(),
		Name:       name,
		StartMonth: "2025-01",
		MonthCount: 12,
		FiscalYear: domain.DefaultFiscalYear(),
		Lines:      lines,
		UpdatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initiative options
type InitiativeOption func(*domain.Initiative)

// WithEntry adds a financial entry to the initiative's active stage.
func WithEntry(lineCode string, plan, actual map[domain.MonthKey]float64) InitiativeOption {
	return func(i *domain.Initiative) {
		st := i.Active()
		st.Financials = append(st.Financials, domain.FinancialEntry{
			LineCode:     lineCode,
			Distribution: plan,
			Actuals:      actual,
		})
	}
}

func WithKPI(k domain.KPI) InitiativeOption {
	return func(i *domain.Initiative) {
		st := i.Active()
		st.KPIs = append(st.KPIs, k)
	}
}

func WithInitiativeID(id string) InitiativeOption {
	return func(i *domain.Initiative) {
		i.ID = id
	}
}

// NewTestInitiative returns an initiative with a single active stage "L1".
func NewTestInitiative(name string, opts ...InitiativeOption) domain.Initiative {
	i := domain.Initiative{
		ID:          uuid.New().String(),
		Name:        name,
		ActiveStage: "L1",
		Stages:      []domain.Stage{{Name: "L1"}},
		UpdatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&i)
	}
	return i
}
