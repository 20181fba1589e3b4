// Package calendar groups month keys into chart buckets and resolves fiscal years.
package calendar

import (
	"fmt"

	"github.com/alexanderramin/blueprint/internal/domain"
)

type View string

const (
	ViewMonths   View = "months"
	ViewQuarters View = "quarters"
	ViewCalendar View = "calendar"
	ViewFiscal   View = "fiscal"
)

// ValidViews is the canonical set of accepted bucket view strings.
var ValidViews = map[string]bool{
	"months": true, "quarters": true, "calendar": true, "fiscal": true,
}

// Bucket is a labelled group of consecutive months.
type Bucket struct {
	Key    string
	Label  string
	View   View
	Months []domain.MonthKey
}

// Contains reports whether m belongs to the bucket.
func (b Bucket) Contains(m domain.MonthKey) bool {
	for _, k := range b.Months {
		if k == m {
			return true
		}
	}
	return false
}

// MaxTimelineMonths bounds the length of a timeline. Longer spans keep the
// most recent months.
const MaxTimelineMonths = 600

// Timeline returns the contiguous run of months from the earliest observed
// month to the later of the last observed month and period. Months missing
// between observations are filled in. Invalid keys are dropped.
func Timeline(observed []domain.MonthKey, period *domain.ReportingPeriod) []domain.MonthKey {
	var first, last domain.MonthKey
	for _, m := range observed {
		if !m.Valid() {
			continue
		}
		if first == "" || m.Before(first) {
			first = m
		}
		if last == "" || last.Before(m) {
			last = m
		}
	}

	if period != nil {
		target := period.MonthKey()
		if first == "" {
			return []domain.MonthKey{target}
		}
		if last.Before(target) {
			last = target
		}
	}
	if first == "" {
		return []domain.MonthKey{}
	}

	span := first.MonthsBetween(last) + 1
	if span > MaxTimelineMonths {
		span = MaxTimelineMonths
		first = last.AddMonths(1 - MaxTimelineMonths)
	}
	return domain.MonthRange(first, span)
}

// FiscalYear returns the fiscal year that month m belongs to.
//
// With FiscalNamedByEnd a fiscal year is named after the calendar year in
// which it ends: for a July start, 2024-07..2025-06 is FY2025. A January start
// is calendar aligned. FiscalNamedByStart names it after the starting year.
func FiscalYear(m domain.MonthKey, cfg domain.FiscalYearConfig) int {
	start := cfg.StartMonth
	if start < 1 || start > 12 {
		start = 1
	}
	startYear := m.Year()
	if m.Month() < start {
		startYear--
	}
	if cfg.Naming == domain.FiscalNamedByStart || start == 1 {
		return startYear
	}
	return startYear + 1
}

// Quarter returns the 1-based calendar quarter of m.
func Quarter(m domain.MonthKey) int {
	return (m.Month()-1)/3 + 1
}

// Buckets partitions months (assumed sorted) into buckets for the given view.
// Bucket order follows the first appearance of each group.
func Buckets(months []domain.MonthKey, view View, cfg domain.FiscalYearConfig) ([]Bucket, error) {
	keyFn, err := bucketKeyFunc(view, cfg)
	if err != nil {
		return nil, err
	}

	var buckets []Bucket
	index := make(map[string]int)
	for _, m := range months {
		key, label := keyFn(m)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key, Label: label, View: view})
		}
		buckets[i].Months = append(buckets[i].Months, m)
	}
	return buckets, nil
}

// FindBucket returns the bucket with the given key.
func FindBucket(buckets []Bucket, key string) (Bucket, bool) {
	for _, b := range buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// FiscalMonths returns the months of horizon that fall in fiscal year fy.
func FiscalMonths(horizon []domain.MonthKey, fy int, cfg domain.FiscalYearConfig) []domain.MonthKey {
	var out []domain.MonthKey
	for _, m := range horizon {
		if FiscalYear(m, cfg) == fy {
			out = append(out, m)
		}
	}
	return out
}

func bucketKeyFunc(view View, cfg domain.FiscalYearConfig) (func(domain.MonthKey) (string, string), error) {
	switch view {
	case ViewMonths:
		return func(m domain.MonthKey) (string, string) {
			return string(m), string(m)
		}, nil
	case ViewQuarters:
		return func(m domain.MonthKey) (string, string) {
			q := Quarter(m)
			return fmt.Sprintf("%d-Q%d", m.Year(), q), fmt.Sprintf("Q%d %d", q, m.Year())
		}, nil
	case ViewCalendar:
		return func(m domain.MonthKey) (string, string) {
			return fmt.Sprintf("CY%d", m.Year()), fmt.Sprintf("CY%d", m.Year())
		}, nil
	case ViewFiscal:
		return func(m domain.MonthKey) (string, string) {
			fy := FiscalYear(m, cfg)
			return fmt.Sprintf("FY%d", fy), fmt.Sprintf("FY%d", fy)
		}, nil
	default:
		return nil, fmt.Errorf("unknown bucket view %q", view)
	}
}
