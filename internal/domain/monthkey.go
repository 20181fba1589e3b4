package domain

import (
	"fmt"
	"time"
)

const monthKeyLayout = "2006-01"

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

// NewMonthKey builds a MonthKey from a year and a 1-based month.
// Months outside 1..12 roll over into adjacent years.
func NewMonthKey(year, month int) MonthKey {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return MonthKey(t.Format(monthKeyLayout))
}

// ParseMonthKey validates s as a "YYYY-MM" key.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid month key %q (expected YYYY-MM)", s)
	}
	return MonthKey(t.Format(monthKeyLayout)), nil
}

func (k MonthKey) time() time.Time {
	t, err := time.Parse(monthKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether k parses as a month key.
func (k MonthKey) Valid() bool {
	_, err := time.Parse(monthKeyLayout, string(k))
	return err == nil
}

func (k MonthKey) Year() int  { return k.time().Year() }
func (k MonthKey) Month() int { return int(k.time().Month()) }

// AddMonths returns the key n months after k (n may be negative).
func (k MonthKey) AddMonths(n int) MonthKey {
	return NewMonthKey(k.Year(), k.Month()+n)
}

// Next returns the following month.
func (k MonthKey) Next() MonthKey { return k.AddMonths(1) }

// Before reports whether k is chronologically earlier than o.
// The "YYYY-MM" layout sorts lexically in chronological order.
func (k MonthKey) Before(o MonthKey) bool { return k < o }

// MonthsBetween returns the number of months from k to o (negative if o is earlier).
func (k MonthKey) MonthsBetween(o MonthKey) int {
	return (o.Year()-k.Year())*12 + (o.Month() - k.Month())
}

// MonthRange returns count consecutive month keys starting at start.
func MonthRange(start MonthKey, count int) []MonthKey {
	if count <= 0 {
		return nil
	}
	out := make([]MonthKey, count)
	for i := 0; i < count; i++ {
		out[i] = start.AddMonths(i)
	}
	return out
}
