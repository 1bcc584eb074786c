package prediction

import (
	"churn-shield/internal/domain/feature"
	"slices"
	"strings"
)

const lowRiskProfile = "Low risk profile"

// Reasons explains each record with the dashboard's rule of thumb. The
// monthly charge rule compares against the median of the same batch.
func Reasons(records []feature.Record) []string {
	charges := make([]float64, len(records))
	for i, rec := range records {
		charges[i] = rec.MonthlyCharges
	}
	med := median(charges)

	out := make([]string, len(records))
	for i, rec := range records {
		var parts []string
		if rec.Contract == feature.LevelMonthToMonth {
			parts = append(parts, "Month-to-month contract")
		}
		if rec.InternetService == feature.LevelFiberOptic && rec.OnlineSecurity == feature.LevelNo {
			parts = append(parts, "No online security")
		}
		if rec.TechSupport == feature.LevelNo {
			parts = append(parts, "No tech support")
		}
		if rec.MonthlyCharges > med {
			parts = append(parts, "High monthly charges")
		}
		if len(parts) == 0 {
			out[i] = lowRiskProfile
			continue
		}
		out[i] = strings.Join(parts, ", ")
	}
	return out
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := slices.Clone(xs)
	slices.Sort(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
