package model

import (
	"churn-shield/internal/domain/feature"
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync"
)

// batches smaller than this are scored on the calling goroutine
const parallelMinRows = 512

// LogisticModel is a binary logistic regression over feature.Schema.
type LogisticModel struct {
	weights   []float64
	intercept float64
	threshold float64
	version   string
}

func NewLogisticModel(a *Artifact) (*LogisticModel, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &LogisticModel{
		weights:   slices.Clone(a.Coefficients),
		intercept: a.Intercept,
		threshold: a.Threshold,
		version:   a.Version,
	}, nil
}

func (m *LogisticModel) Threshold() float64 { return m.threshold }

func (m *LogisticModel) Version() string { return m.version }

func (m *LogisticModel) PredictProba(ctx context.Context, x feature.Matrix) ([]float64, error) {
	for i, row := range x {
		if len(row) != len(m.weights) {
			return nil, fmt.Errorf("row %d has %d columns, model expects %d", i, len(row), len(m.weights))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	if len(x) < parallelMinRows {
		for i, row := range x {
			out[i] = m.score(row)
		}
		return out, nil
	}

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(x) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(x))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = m.score(x[i])
			}
		}(start, end)
	}
	wg.Wait()
	return out, ctx.Err()
}

func (m *LogisticModel) score(row feature.Vector) float64 {
	z := m.intercept
	for j, v := range row {
		z += m.weights[j] * v
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
