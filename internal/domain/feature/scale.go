package feature

import (
	"fmt"
	"math"
)

// Scaler rescales the numeric columns of m in place.
type Scaler interface {
	Scale(records []Record, m Matrix)
}

// Range is a closed interval of observed values for one numeric field.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) apply(x float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (x - r.Min) / (r.Max - r.Min)
}

// BatchScaler fits min/max on the request itself. A single-record batch, or
// one where every value is equal, scales that field to 0.
type BatchScaler struct{}

func (BatchScaler) Scale(records []Record, m Matrix) {
	if len(records) == 0 {
		return
	}
	for _, field := range NumericFields {
		r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, rec := range records {
			x, _ := rec.Number(field)
			r.Min = math.Min(r.Min, x)
			r.Max = math.Max(r.Max, x)
		}
		col := columnIndex[field]
		for i, rec := range records {
			x, _ := rec.Number(field)
			m[i][col] = r.apply(x)
		}
	}
}

// RangeScaler uses ranges fixed at training time. Values outside the range
// are clipped to [0,1].
type RangeScaler struct {
	Ranges map[string]Range
}

func NewRangeScaler(ranges map[string]Range) (*RangeScaler, error) {
	for _, field := range NumericFields {
		r, ok := ranges[field]
		if !ok {
			return nil, fmt.Errorf("missing training range for %s", field)
		}
		if r.Max < r.Min {
			return nil, fmt.Errorf("invalid training range for %s: max %v < min %v", field, r.Max, r.Min)
		}
	}
	return &RangeScaler{Ranges: ranges}, nil
}

func (s *RangeScaler) Scale(records []Record, m Matrix) {
	for _, field := range NumericFields {
		r := s.Ranges[field]
		col := columnIndex[field]
		for i, rec := range records {
			x, _ := rec.Number(field)
			m[i][col] = math.Max(0, math.Min(1, r.apply(x)))
		}
	}
}
