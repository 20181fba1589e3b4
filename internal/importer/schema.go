package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Amount is a monthly cell value. It accepts JSON numbers and numeric
// strings; null and empty strings read as zero, and any other text reads as
// NaN so conversion can count it as a non-numeric cell.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*a = Amount(math.NaN())
			return nil
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// MonthAmounts maps "YYYY-MM" keys to amounts.
type MonthAmounts map[string]Amount

// BlueprintSchema is the JSON structure for a blueprint import file.
type BlueprintSchema struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name"`
	StartMonth string            `json:"start_month"`
	MonthCount int               `json:"month_count"`
	FiscalYear *FiscalYearImport `json:"fiscal_year,omitempty"`
	Ratios     []RatioImport     `json:"ratios,omitempty"`
	Lines      []LineImport      `json:"lines"`
}

type FiscalYearImport struct {
	StartMonth int    `json:"start_month"`
	Naming     string `json:"naming,omitempty"`
}

// LineImport is one blueprint row. Mode defaults to manual and nature to
// revenue for manual lines.
type LineImport struct {
	ID     string       `json:"id,omitempty"`
	Code   string       `json:"code"`
	Name   string       `json:"name"`
	Indent int          `json:"indent"`
	Nature string       `json:"nature,omitempty"`
	Mode   string       `json:"mode,omitempty"`
	Months MonthAmounts `json:"months,omitempty"`
}

type RatioImport struct {
	ID          string `json:"id,omitempty"`
	Label       string `json:"label"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
	Format      string `json:"format,omitempty"`
	Precision   *int   `json:"precision,omitempty"`
}

// InitiativeFileSchema is the JSON structure for an initiative import file.
type InitiativeFileSchema struct {
	Initiatives []InitiativeImport `json:"initiatives"`
}

type InitiativeImport struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	ActiveStage string        `json:"active_stage,omitempty"`
	Stages      []StageImport `json:"stages"`
}

type StageImport struct {
	Name       string        `json:"name"`
	Financials []EntryImport `json:"financials,omitempty"`
	KPIs       []KPIImport   `json:"kpis,omitempty"`
}

type EntryImport struct {
	LineCode     string       `json:"line_code"`
	Distribution MonthAmounts `json:"distribution,omitempty"`
	Actuals      MonthAmounts `json:"actuals,omitempty"`
}

type KPIImport struct {
	Name         string       `json:"name"`
	Unit         string       `json:"unit,omitempty"`
	Baseline     Amount       `json:"baseline"`
	Distribution MonthAmounts `json:"distribution,omitempty"`
	Actuals      MonthAmounts `json:"actuals,omitempty"`
}

// LoadBlueprintSchema reads and parses a blueprint import file.
func LoadBlueprintSchema(path string) (*BlueprintSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema BlueprintSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing blueprint file: %w", err)
	}
	return &schema, nil
}

// LoadInitiativeSchema reads and parses an initiative import file.
func LoadInitiativeSchema(path string) (*InitiativeFileSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema InitiativeFileSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing initiative file: %w", err)
	}
	return &schema, nil
}
