package model

import (
	"churn-shield/internal/domain/feature"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

const defaultThreshold = 0.5

// Artifact is the serialized classifier. Features must match the feature
// schema exactly, names and order.
type Artifact struct {
	Version      string                   `json:"version"`
	Features     []string                 `json:"features"`
	Coefficients []float64                `json:"coefficients"`
	Intercept    float64                  `json:"intercept"`
	Threshold    float64                  `json:"threshold"`
	Scaling      map[string]feature.Range `json:"scaling,omitempty"`
}

func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model artifact: %w", err)
	}
	defer f.Close()
	return ParseArtifact(f)
}

func ParseArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Artifact) Validate() error {
	schema := feature.Schema()
	if !slices.Equal(a.Features, schema) {
		return fmt.Errorf("model features do not match schema: got %d columns %v, want %d columns %v",
			len(a.Features), a.Features, len(schema), schema)
	}
	if len(a.Coefficients) != len(schema) {
		return fmt.Errorf("model has %d coefficients for %d features", len(a.Coefficients), len(schema))
	}
	if a.Threshold == 0 {
		a.Threshold = defaultThreshold
	}
	if a.Threshold <= 0 || a.Threshold >= 1 {
		return fmt.Errorf("model threshold %v outside (0,1)", a.Threshold)
	}
	return nil
}

// RangeScaler returns the training-time scaler, or nil when the artifact
// carries no scaling ranges.
func (a *Artifact) RangeScaler() (*feature.RangeScaler, error) {
	if len(a.Scaling) == 0 {
		return nil, nil
	}
	return feature.NewRangeScaler(a.Scaling)
}
