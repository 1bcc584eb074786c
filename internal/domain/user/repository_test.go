package user

import (
	"churn-shield/internal/event"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Insert(ctx context.Context, username, passwordHash string) error {
	ret := _m.Called(ctx, username, passwordHash)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, username, passwordHash)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) FindPasswordHash(ctx context.Context, username string) (string, error) {
	ret := _m.Called(ctx, username)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string) string); ok {
		r0 = rf(ctx, username)
	} else {
		r0 = ret.String(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, username)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
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
