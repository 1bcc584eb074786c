package batch_test

import (
	"churn-shield/internal/batch"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReloader struct {
	mock.Mock
}

func (m *MockReloader) Reload(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func newJob(r batch.Reloader) *batch.ModelReloadJob {
	return batch.NewModelReloadJob(r, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestModelReloadJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("reloaded", func(t *testing.T) {
		r := new(MockReloader)
		r.On("Reload", ctx).Return(true, nil).Once()

		assert.NoError(t, newJob(r).Run(ctx))
		r.AssertExpectations(t)
	})

	t.Run("unchanged", func(t *testing.T) {
		r := new(MockReloader)
		r.On("Reload", ctx).Return(false, nil).Once()

		assert.NoError(t, newJob(r).Run(ctx))
	})

	t.Run("failure is reported", func(t *testing.T) {
		r := new(MockReloader)
		r.On("Reload", ctx).Return(false, errors.New("bad artifact")).Once()

		err := newJob(r).Run(ctx)
		assert.ErrorContains(t, err, "bad artifact")
	})
}

func TestNewModelReloadJob_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { batch.NewModelReloadJob(nil, nil) })
}
