package engine

import (
	"math"
	"sort"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// BreakdownTopN is how many initiatives are listed before "Others".
	BreakdownTopN = 10
	OthersLabel   = "Others"
)

type BreakdownRow struct {
	InitiativeID string
	Name         string
	Value        float64
	Share        float64 // percent, one decimal
	Others       bool
	Count        int // initiatives folded into the row
}

// BreakdownResult ranks initiatives contributing to a line within a bucket.
type BreakdownResult struct {
	LineID   string
	TotalAbs float64
	Net      float64
	Rows     []BreakdownRow
}

type contribution struct {
	id    string
	value float64
}

var hundred = decimal.NewFromInt(100)

// Breakdown sums each initiative's attributed amount for lineID across months,
// drops zero contributors, sorts by absolute value and keeps the top
// BreakdownTopN. Shares are computed against the absolute total of all
// contributors. The remaining initiatives are folded into an "Others" row
// whose share is 100 minus the listed shares, so rounding never compounds.
// An empty result is returned when nothing contributes.
func Breakdown(attr Attribution, lineID string, months []domain.MonthKey, names map[string]string) BreakdownResult {
	res := BreakdownResult{LineID: lineID}

	byMonth := attr[lineID]
	totals := make(map[string]float64)
	for _, m := range months {
		for id, v := range byMonth[m] {
			totals[id] += v
		}
	}

	contribs := make([]contribution, 0, len(totals))
	for id, v := range totals {
		if v == 0 {
			continue
		}
		contribs = append(contribs, contribution{id: id, value: v})
	}
	sort.Slice(contribs, func(i, j int) bool {
		ai, aj := math.Abs(contribs[i].value), math.Abs(contribs[j].value)
		if ai != aj {
			return ai > aj
		}
		return contribs[i].id < contribs[j].id
	})

	for _, c := range contribs {
		res.TotalAbs += math.Abs(c.value)
		res.Net += c.value
	}
	if res.TotalAbs == 0 {
		return res
	}

	total := decimal.NewFromFloat(res.TotalAbs)
	listed := decimal.Zero
	top := contribs
	if len(top) > BreakdownTopN {
		top = contribs[:BreakdownTopN]
	}
	for _, c := range top {
		share := decimal.NewFromFloat(math.Abs(c.value)).Div(total).Mul(hundred).Round(1)
		listed = listed.Add(share)
		res.Rows = append(res.Rows, BreakdownRow{
			InitiativeID: c.id,
			Name:         domain.CoalesceStr(names[c.id], c.id),
			Value:        c.value,
			Share:        share.InexactFloat64(),
			Count:        1,
		})
	}

	rest := contribs[len(top):]
	if len(rest) == 0 {
		return res
	}
	others := BreakdownRow{Name: OthersLabel, Others: true, Count: len(rest)}
	for _, c := range rest {
		others.Value += c.value
	}
	share := hundred.Sub(listed).Round(1)
	if share.IsNegative() {
		share = decimal.Zero
	}
	others.Share = share.InexactFloat64()
	res.Rows = append(res.Rows, others)
	return res
}
