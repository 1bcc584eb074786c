package prediction

import (
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/event"
	"churn-shield/internal/infrastructure/monitoring"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	PredictOnline(ctx context.Context, rec feature.Record) (*OnlineResult, error)
	PredictBatch(ctx context.Context, username string, b feature.Batch) (*BatchResult, error)
	GetBatch(ctx context.Context, id string) (*BatchResult, error)
}

var _ Service = (*predictionService)(nil)

type predictionService struct {
	pipeline  *feature.Pipeline
	predictor Predictor
	results   ResultStore
	resultTTL time.Duration
	pub       event.EventPublisher
	logger    *slog.Logger
}

func NewPredictionService(
	pipeline *feature.Pipeline,
	predictor Predictor,
	results ResultStore,
	resultTTL time.Duration,
	pub event.EventPublisher,
	logger *slog.Logger,
) Service {
	if predictor == nil {
		panic("predictor cannot be nil")
	}
	if results == nil {
		panic("result store cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewPredictionService, using default stderr handler")
	}
	if pipeline == nil {
		pipeline = feature.NewPipeline(nil)
	}
	if pub == nil {
		pub = event.NewNoopEventPublisher(logger)
	}
	return &predictionService{
		pipeline:  pipeline,
		predictor: predictor,
		results:   results,
		resultTTL: resultTTL,
		pub:       pub,
		logger:    logger.With(slog.String("component", "predictionService")),
	}
}

type scored struct {
	encoded   *feature.Result
	probs     []float64
	threshold float64
}

func (s *predictionService) score(ctx context.Context, b feature.Batch) (*scored, error) {
	m, err := s.predictor.Current()
	if err != nil {
		return nil, err
	}
	encoded, err := s.pipeline.TransformWith(b, m)
	if err != nil {
		return nil, err
	}
	probs, err := m.PredictProba(ctx, encoded.Matrix)
	if err != nil {
		return nil, fmt.Errorf("failed to score batch: %w", err)
	}
	if len(probs) != len(encoded.Matrix) {
		return nil, fmt.Errorf("%w: predictor returned %d scores for %d rows",
			apperrors.ErrInternalServer, len(probs), len(encoded.Matrix))
	}
	return &scored{encoded: encoded, probs: probs, threshold: m.Threshold()}, nil
}

func (s *predictionService) PredictOnline(ctx context.Context, rec feature.Record) (*OnlineResult, error) {
	sc, err := s.score(ctx, feature.Batch{Records: []feature.Record{rec}})
	if err != nil {
		s.logger.WarnContext(ctx, "Online prediction failed", slog.Any("error", err))
		return nil, err
	}

	p := sc.probs[0]
	res := &OnlineResult{
		WillChurn:        p >= sc.threshold,
		ChurnProbability: p,
	}
	if res.WillChurn {
		res.Confidence = p
		res.Message = MessageWillChurn
	} else {
		res.Confidence = 1 - p
		res.Message = MessageWillStay
	}
	res.ConfidenceText = FormatProbability(res.Confidence)

	label := LabelNo
	if res.WillChurn {
		label = LabelYes
	}
	monitoring.RecordPrediction(monitoring.ModeOnline, label)
	s.logger.InfoContext(ctx, "Online prediction served", slog.String("label", label), slog.Float64("probability", p))
	return res, nil
}

func (s *predictionService) PredictBatch(ctx context.Context, username string, b feature.Batch) (*BatchResult, error) {
	logCtx := s.logger.With(slog.Int("rows", len(b.Records)))

	sc, err := s.score(ctx, b)
	if err != nil {
		logCtx.WarnContext(ctx, "Batch prediction failed", slog.Any("error", err))
		return nil, err
	}

	encoded, probs, threshold := sc.encoded, sc.probs, sc.threshold
	reasons := Reasons(b.Records)
	rows := make([]Row, len(probs))
	churners := 0
	for i, p := range probs {
		id := strconv.Itoa(i + 1)
		if encoded.CustomerIDs != nil {
			id = encoded.CustomerIDs[i]
		}
		label := LabelNo
		if p >= threshold {
			label = LabelYes
			churners++
		}
		rows[i] = Row{
			CustomerID:  id,
			WillChurn:   label,
			Probability: FormatProbability(p),
			Reason:      reasons[i],
		}
		monitoring.RecordPrediction(monitoring.ModeBatch, label)
	}
	monitoring.ObserveBatchRows(len(rows))

	result := &BatchResult{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now(),
		Rows:      rows,
		Summary:   Summarize(rows),
	}
	logCtx = logCtx.With(slog.String("batchID", result.ID))

	if err := s.results.Save(ctx, result, s.resultTTL); err != nil {
		logCtx.ErrorContext(ctx, "Failed to store batch result", slog.Any("error", err))
		return nil, fmt.Errorf("failed to store batch result: %w", err)
	}
	logCtx.InfoContext(ctx, "Batch prediction completed", slog.Int("churners", churners))

	evt := event.BatchCompletedEvent{
		BatchID:   result.ID,
		Username:  username,
		Rows:      len(rows),
		Churners:  churners,
		Timestamp: result.CreatedAt,
	}
	if err := s.pub.PublishBatchCompleted(ctx, evt); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish batch completed event", slog.Any("error", err))
	}
	return result, nil
}

func (s *predictionService) GetBatch(ctx context.Context, id string) (*BatchResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: batch id is required", apperrors.ErrInvalidArgument)
	}
	return s.results.Get(ctx, id)
}
