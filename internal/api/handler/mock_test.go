package handler

import (
	"bytes"
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/domain/session"
	"churn-shield/internal/infrastructure/model"
	"context"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) AddUser(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) PredictOnline(ctx context.Context, rec feature.Record) (*prediction.OnlineResult, error) {
	args := m.Called(ctx, rec)
	if res, ok := args.Get(0).(*prediction.OnlineResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPredictionService) PredictBatch(ctx context.Context, username string, b feature.Batch) (*prediction.BatchResult, error) {
	args := m.Called(ctx, username, b)
	if res, ok := args.Get(0).(*prediction.BatchResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPredictionService) GetBatch(ctx context.Context, id string) (*prediction.BatchResult, error) {
	args := m.Called(ctx, id)
	if res, ok := args.Get(0).(*prediction.BatchResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockModelInfo struct {
	mock.Mock
}

func (m *MockModelInfo) Info() (model.Info, error) {
	args := m.Called()
	return args.Get(0).(model.Info), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestSessions() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), time.Hour, testLogger())
}
