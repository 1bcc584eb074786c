package prediction

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

var sliceColors = []string{"#ff9999", "#66b3ff"}

type Slice struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent string `json:"percent"`
	Color   string `json:"color"`
}

// Summary is the churn distribution of one batch, ready for a pie chart.
// Slices are ordered by count, largest first; empty labels are omitted.
type Summary struct {
	Total  int     `json:"total"`
	Slices []Slice `json:"slices"`
}

func Summarize(rows []Row) Summary {
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.WillChurn]++
	}

	var slices []Slice
	for _, label := range []string{LabelYes, LabelNo} {
		if counts[label] > 0 {
			slices = append(slices, Slice{Label: label, Count: counts[label]})
		}
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Count > slices[j].Count })

	total := len(rows)
	for i := range slices {
		slices[i].Percent = formatPercent(
			decimal.NewFromInt(int64(slices[i].Count)).Div(decimal.NewFromInt(int64(total))), 1)
		slices[i].Color = sliceColors[i%len(sliceColors)]
	}
	return Summary{Total: total, Slices: slices}
}

// formatPercent renders a fraction as "12.34%".
func formatPercent(frac decimal.Decimal, places int32) string {
	return frac.Mul(decimal.NewFromInt(100)).StringFixed(places) + "%"
}

// FormatProbability renders p with two decimals. Rounding works on the
// binary value of p*100, so exact ties go to the even digit.
func FormatProbability(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 2, 64) + "%"
}
