package prediction

import (
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/event"
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPredictor is both the Predictor and the Model it hands out. Set
// Unavailable to make Current fail.
type MockPredictor struct {
	mock.Mock
	Unavailable error
}

func (_m *MockPredictor) Current() (Model, error) {
	if _m.Unavailable != nil {
		return nil, _m.Unavailable
	}
	return _m, nil
}

func (_m *MockPredictor) Scale(records []feature.Record, m feature.Matrix) {
	feature.BatchScaler{}.Scale(records, m)
}

func (_m *MockPredictor) PredictProba(ctx context.Context, m feature.Matrix) ([]float64, error) {
	ret := _m.Called(ctx, m)

	var r0 []float64
	if rf, ok := ret.Get(0).(func(context.Context, feature.Matrix) []float64); ok {
		r0 = rf(ctx, m)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]float64)
	}

	return r0, ret.Error(1)
}

func (_m *MockPredictor) Threshold() float64 {
	return _m.Called().Get(0).(float64)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishUserRegistered(ctx context.Context, e event.UserRegisteredEvent) error {
	return _m.Called(ctx, e).Error(0)
}

func (_m *MockEventPublisher) PublishBatchCompleted(ctx context.Context, e event.BatchCompletedEvent) error {
	return _m.Called(ctx, e).Error(0)
}
