package feature

import (
	"churn-shield/internal/pkg/apperrors"
	"fmt"
)

// Result is the model input for one batch. CustomerIDs is nil when the
// batch had no identifier column.
type Result struct {
	Matrix      Matrix
	CustomerIDs []string
}

// Pipeline runs binary encoding, categorical expansion and scaling, in
// that order.
type Pipeline struct {
	scaler Scaler
}

func NewPipeline(scaler Scaler) *Pipeline {
	if scaler == nil {
		scaler = BatchScaler{}
	}
	return &Pipeline{scaler: scaler}
}

func (p *Pipeline) Transform(b Batch) (*Result, error) {
	return p.TransformWith(b, p.scaler)
}

// TransformWith runs the pipeline with scaler in place of the configured
// one. A nil scaler falls back to the configured scaler.
func (p *Pipeline) TransformWith(b Batch, scaler Scaler) (*Result, error) {
	if scaler == nil {
		scaler = p.scaler
	}
	if len(b.Records) == 0 {
		return nil, fmt.Errorf("%w: batch has no records", apperrors.ErrInvalidArgument)
	}

	m := NewMatrix(len(b.Records))
	if err := EncodeBinary(b.Records, m); err != nil {
		return nil, err
	}
	if err := ExpandCategorical(b.Records, m); err != nil {
		return nil, err
	}
	scaler.Scale(b.Records, m)

	res := &Result{Matrix: m}
	if b.HasCustomerID {
		res.CustomerIDs = make([]string, len(b.Records))
		for i, rec := range b.Records {
			res.CustomerIDs[i] = rec.CustomerID
		}
	}
	return res, nil
}
