package prediction_test

import (
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/event"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func record(id, contract string, monthly float64) feature.Record {
	return feature.Record{
		CustomerID:       id,
		SeniorCitizen:    "No",
		Dependents:       "No",
		Tenure:           12,
		PhoneService:     "Yes",
		MultipleLines:    "No",
		InternetService:  "DSL",
		OnlineSecurity:   "Yes",
		OnlineBackup:     "No",
		TechSupport:      "Yes",
		StreamingTV:      "No",
		StreamingMovies:  "No",
		Contract:         contract,
		PaperlessBilling: "Yes",
		PaymentMethod:    "Mailed check",
		MonthlyCharges:   monthly,
		TotalCharges:     monthly * 12,
	}
}

type setup struct {
	predictor *prediction.MockPredictor
	pub       *prediction.MockEventPublisher
	store     *prediction.MemoryResultStore
	service   prediction.Service
}

func newSetup() setup {
	s := setup{
		predictor: new(prediction.MockPredictor),
		pub:       new(prediction.MockEventPublisher),
		store:     prediction.NewMemoryResultStore(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = prediction.NewPredictionService(feature.NewPipeline(nil), s.predictor, s.store, time.Hour, s.pub, logger)
	return s
}

func TestPredictionService_PredictOnline(t *testing.T) {
	ctx := context.Background()

	t.Run("churn uses p as confidence", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("Threshold").Return(0.5)
		s.predictor.On("PredictProba", ctx, mock.AnythingOfType("feature.Matrix")).Return([]float64{0.8}, nil).Once()

		res, err := s.service.PredictOnline(ctx, record("", "Month-to-month", 90))

		require.NoError(t, err)
		assert.True(t, res.WillChurn)
		assert.Equal(t, 0.8, res.ChurnProbability)
		assert.Equal(t, 0.8, res.Confidence)
		assert.Equal(t, "80.00%", res.ConfidenceText)
		assert.Equal(t, prediction.MessageWillChurn, res.Message)
	})

	t.Run("stay uses 1-p as confidence", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("Threshold").Return(0.5)
		s.predictor.On("PredictProba", ctx, mock.Anything).Return([]float64{0.25}, nil).Once()

		res, err := s.service.PredictOnline(ctx, record("", "Two year", 20))

		require.NoError(t, err)
		assert.False(t, res.WillChurn)
		assert.Equal(t, 0.75, res.Confidence)
		assert.Equal(t, prediction.MessageWillStay, res.Message)
	})

	t.Run("probability at threshold is churn", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("Threshold").Return(0.5)
		s.predictor.On("PredictProba", ctx, mock.Anything).Return([]float64{0.5}, nil).Once()

		res, err := s.service.PredictOnline(ctx, record("", "Two year", 20))
		require.NoError(t, err)
		assert.True(t, res.WillChurn)
	})

	t.Run("unmapped value never reaches the model", func(t *testing.T) {
		s := newSetup()
		rec := record("", "Weekly", 20)

		_, err := s.service.PredictOnline(ctx, rec)

		assert.ErrorIs(t, err, apperrors.ErrUnmappedCategory)
		s.predictor.AssertNotCalled(t, "PredictProba", mock.Anything, mock.Anything)
	})

	t.Run("model unavailable", func(t *testing.T) {
		s := newSetup()
		s.predictor.Unavailable = apperrors.ErrModelUnavailable

		_, err := s.service.PredictOnline(ctx, record("", "Two year", 20))
		assert.ErrorIs(t, err, apperrors.ErrModelUnavailable)
		s.predictor.AssertNotCalled(t, "PredictProba", mock.Anything, mock.Anything)
	})

	t.Run("scoring error", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("PredictProba", ctx, mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := s.service.PredictOnline(ctx, record("", "Two year", 20))
		assert.ErrorContains(t, err, "failed to score batch")
	})
}

// generations hands out a different model on every Current call, the way a
// registry does when reloads land between calls.
type generations struct {
	calls int
	gens  []*fixedModel
}

func (g *generations) Current() (prediction.Model, error) {
	m := g.gens[g.calls%len(g.gens)]
	g.calls++
	return m, nil
}

type fixedModel struct {
	feature.BatchScaler
	prob      float64
	threshold float64
}

func (m *fixedModel) PredictProba(_ context.Context, x feature.Matrix) ([]float64, error) {
	probs := make([]float64, len(x))
	for i := range probs {
		probs[i] = m.prob
	}
	return probs, nil
}

func (m *fixedModel) Threshold() float64 { return m.threshold }

func TestPredictionService_OneModelPerRequest(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gens := &generations{gens: []*fixedModel{
		{prob: 0.6, threshold: 0.9},
		{prob: 0.6, threshold: 0.1},
	}}
	svc := prediction.NewPredictionService(nil, gens, prediction.NewMemoryResultStore(), time.Hour, nil, logger)

	res, err := svc.PredictOnline(ctx, record("", "Two year", 20))
	require.NoError(t, err)
	assert.Equal(t, 1, gens.calls)
	assert.False(t, res.WillChurn)

	batch, err := svc.PredictBatch(ctx, "", feature.Batch{Records: []feature.Record{record("a", "Two year", 20), record("b", "Two year", 30)}})
	require.NoError(t, err)
	assert.Equal(t, 2, gens.calls)
	assert.Equal(t, "Yes", batch.Rows[0].WillChurn)
	assert.Equal(t, "Yes", batch.Rows[1].WillChurn)
}

func TestPredictionService_PredictBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("rows summary and event", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("Threshold").Return(0.5)
		s.predictor.On("PredictProba", ctx, mock.MatchedBy(func(m feature.Matrix) bool { return len(m) == 3 })).
			Return([]float64{0.9, 0.1234, 0.7}, nil).Once()
		s.pub.On("PublishBatchCompleted", ctx, mock.MatchedBy(func(e event.BatchCompletedEvent) bool {
			return e.Rows == 3 && e.Churners == 2 && e.Username == "alice"
		})).Return(nil).Once()

		batch := feature.Batch{
			Records: []feature.Record{
				record("A", "Month-to-month", 100),
				record("B", "Two year", 20),
				record("C", "One year", 50),
			},
			HasCustomerID: true,
		}

		res, err := s.service.PredictBatch(ctx, "alice", batch)
		require.NoError(t, err)

		require.Len(t, res.Rows, 3)
		assert.Equal(t, prediction.Row{CustomerID: "A", WillChurn: "Yes", Probability: "90.00%", Reason: "Month-to-month contract, High monthly charges"}, res.Rows[0])
		assert.Equal(t, prediction.Row{CustomerID: "B", WillChurn: "No", Probability: "12.34%", Reason: "Low risk profile"}, res.Rows[1])
		assert.Equal(t, "Yes", res.Rows[2].WillChurn)

		assert.Equal(t, 3, res.Summary.Total)
		require.Len(t, res.Summary.Slices, 2)
		assert.Equal(t, prediction.Slice{Label: "Yes", Count: 2, Percent: "66.7%", Color: "#ff9999"}, res.Summary.Slices[0])
		assert.Equal(t, prediction.Slice{Label: "No", Count: 1, Percent: "33.3%", Color: "#66b3ff"}, res.Summary.Slices[1])

		stored, err := s.service.GetBatch(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res, stored)
		s.pub.AssertExpectations(t)
	})

	t.Run("publish failure keeps the result", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("Threshold").Return(0.5)
		s.predictor.On("PredictProba", ctx, mock.Anything).Return([]float64{0.1}, nil).Once()
		s.pub.On("PublishBatchCompleted", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		res, err := s.service.PredictBatch(ctx, "", feature.Batch{Records: []feature.Record{record("X", "Two year", 20)}, HasCustomerID: true})
		require.NoError(t, err)
		assert.Equal(t, "X", res.Rows[0].CustomerID)
	})

	t.Run("row numbers stand in for missing ids", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("Threshold").Return(0.5)
		s.predictor.On("PredictProba", ctx, mock.Anything).Return([]float64{0.1, 0.2}, nil).Once()
		s.pub.On("PublishBatchCompleted", ctx, mock.Anything).Return(nil).Once()

		res, err := s.service.PredictBatch(ctx, "", feature.Batch{Records: []feature.Record{record("", "Two year", 20), record("", "Two year", 30)}})
		require.NoError(t, err)
		assert.Equal(t, "1", res.Rows[0].CustomerID)
		assert.Equal(t, "2", res.Rows[1].CustomerID)
	})

	t.Run("score count mismatch", func(t *testing.T) {
		s := newSetup()
		s.predictor.On("PredictProba", ctx, mock.Anything).Return([]float64{0.1}, nil).Once()

		_, err := s.service.PredictBatch(ctx, "", feature.Batch{Records: []feature.Record{record("a", "Two year", 1), record("b", "Two year", 2)}})
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
	})

	t.Run("empty batch", func(t *testing.T) {
		s := newSetup()
		_, err := s.service.PredictBatch(ctx, "", feature.Batch{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestPredictionService_GetBatch(t *testing.T) {
	s := newSetup()

	_, err := s.service.GetBatch(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = s.service.GetBatch(context.Background(), "unknown")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReasons(t *testing.T) {
	fiber := record("f", "One year", 10)
	fiber.InternetService = "Fiber optic"
	fiber.OnlineSecurity = "No"
	fiber.TechSupport = "No"

	noInternet := record("n", "Two year", 10)
	noInternet.InternetService = "No"
	noInternet.OnlineSecurity = "No internet service"
	noInternet.TechSupport = "No internet service"

	got := prediction.Reasons([]feature.Record{fiber, noInternet, record("m", "Month-to-month", 99)})

	assert.Equal(t, []string{
		"No online security, No tech support",
		"Low risk profile",
		"Month-to-month contract, High monthly charges",
	}, got)
}

func TestReasons_EvenBatchMedian(t *testing.T) {
	got := prediction.Reasons([]feature.Record{
		record("a", "Two year", 10),
		record("b", "Two year", 20),
		record("c", "Two year", 30),
		record("d", "Two year", 40),
	})

	assert.Equal(t, []string{"Low risk profile", "Low risk profile", "High monthly charges", "High monthly charges"}, got)
}

func TestSummarize(t *testing.T) {
	t.Run("single label", func(t *testing.T) {
		sum := prediction.Summarize([]prediction.Row{{WillChurn: "No"}, {WillChurn: "No"}})
		assert.Equal(t, prediction.Summary{Total: 2, Slices: []prediction.Slice{
			{Label: "No", Count: 2, Percent: "100.0%", Color: "#ff9999"},
		}}, sum)
	})

	t.Run("tie keeps Yes first", func(t *testing.T) {
		sum := prediction.Summarize([]prediction.Row{{WillChurn: "No"}, {WillChurn: "Yes"}})
		require.Len(t, sum.Slices, 2)
		assert.Equal(t, "Yes", sum.Slices[0].Label)
		assert.Equal(t, "50.0%", sum.Slices[0].Percent)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, prediction.Summary{}, prediction.Summarize(nil))
	})
}

func TestFormatProbability(t *testing.T) {
	assert.Equal(t, "12.34%", prediction.FormatProbability(0.1234))
	assert.Equal(t, "0.00%", prediction.FormatProbability(0))
	assert.Equal(t, "100.00%", prediction.FormatProbability(1))
	assert.Equal(t, "12.35%", prediction.FormatProbability(0.123456))
	assert.Equal(t, "0.12%", prediction.FormatProbability(0.00125))
	assert.Equal(t, "0.38%", prediction.FormatProbability(0.00375))
	assert.NotPanics(t, func() { prediction.FormatProbability(math.NaN()) })
}

func TestMemoryResultStore(t *testing.T) {
	ctx := context.Background()
	store := prediction.NewMemoryResultStore()

	require.NoError(t, store.Save(ctx, &prediction.BatchResult{ID: "b1"}, time.Hour))
	got, err := store.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.ID)

	require.NoError(t, store.Save(ctx, &prediction.BatchResult{ID: "b2"}, time.Nanosecond))
	time.Sleep(2 * time.Millisecond)
	_, err = store.Get(ctx, "b2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, store.Save(ctx, &prediction.BatchResult{}, time.Hour), apperrors.ErrInvalidArgument)
}
