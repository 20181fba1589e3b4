package domain

import "fmt"

// ReportingPeriod is the configured "current" month for dashboards.
type ReportingPeriod struct {
	Month int
	Year  int
}

func (p ReportingPeriod) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("period month %d must be between 1 and 12", p.Month)
	}
	if p.Year < 1900 || p.Year > 9999 {
		return fmt.Errorf("period year %d out of range", p.Year)
	}
	return nil
}

func (p ReportingPeriod) MonthKey() MonthKey {
	return NewMonthKey(p.Year, p.Month)
}

// PeriodFromMonthKey converts a month key into a reporting period.
func PeriodFromMonthKey(k MonthKey) ReportingPeriod {
	return ReportingPeriod{Month: k.Month(), Year: k.Year()}
}
