package model

import (
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/infrastructure/monitoring"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Info describes the loaded model for the API.
type Info struct {
	Version   string    `json:"version"`
	Path      string    `json:"path"`
	Features  []string  `json:"features"`
	Threshold float64   `json:"threshold"`
	Scaling   string    `json:"scaling"`
	LoadedAt  time.Time `json:"loadedAt"`
}

// Snapshot is one loaded artifact: the model, its threshold and the
// scaling that goes with it. A Snapshot never changes after load.
type Snapshot struct {
	*LogisticModel
	ranges *feature.RangeScaler
}

// Scale uses the artifact's training ranges when the registry runs in
// artifact mode and per-batch ranges otherwise.
func (s *Snapshot) Scale(records []feature.Record, m feature.Matrix) {
	if s.ranges != nil {
		s.ranges.Scale(records, m)
		return
	}
	feature.BatchScaler{}.Scale(records, m)
}

var _ prediction.Model = (*Snapshot)(nil)

// Registry serves the current model and swaps in a new artifact when the
// file on disk changes.
type Registry struct {
	path        string
	scalingMode string
	logger      *slog.Logger

	mu       sync.RWMutex
	snap     *Snapshot
	modTime  time.Time
	size     int64
	loadedAt time.Time
}

var _ prediction.Predictor = (*Registry)(nil)

const (
	ScalingBatch    = "batch"
	ScalingArtifact = "artifact"
)

func NewRegistry(path, scalingMode string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if scalingMode == "" {
		scalingMode = ScalingBatch
	}
	return &Registry{
		path:        path,
		scalingMode: scalingMode,
		logger:      logger.With("component", "ModelRegistry", "path", path),
	}
}

// Load reads the artifact unconditionally.
func (r *Registry) Load() error {
	st, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrModelUnavailable, err)
	}
	return r.load(st)
}

func (r *Registry) load(st os.FileInfo) error {
	a, err := LoadArtifact(r.path)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrModelUnavailable, err)
	}
	m, err := NewLogisticModel(a)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrModelUnavailable, err)
	}
	ranges, err := a.RangeScaler()
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrModelUnavailable, err)
	}
	if r.scalingMode == ScalingArtifact && ranges == nil {
		return fmt.Errorf("%w: artifact scaling requested but model %s has no scaling ranges",
			apperrors.ErrModelUnavailable, a.Version)
	}

	snap := &Snapshot{LogisticModel: m}
	if r.scalingMode == ScalingArtifact {
		snap.ranges = ranges
	}

	r.mu.Lock()
	r.snap = snap
	r.modTime = st.ModTime()
	r.size = st.Size()
	r.loadedAt = time.Now()
	r.mu.Unlock()

	r.logger.Info("Model loaded", "version", a.Version, "threshold", a.Threshold)
	return nil
}

// Reload swaps in the artifact if the file changed since the last load.
// The current model keeps serving when the new artifact is invalid.
func (r *Registry) Reload(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	st, err := os.Stat(r.path)
	if err != nil {
		monitoring.RecordModelReload(monitoring.ResultError)
		return false, fmt.Errorf("failed to stat model artifact: %w", err)
	}

	r.mu.RLock()
	unchanged := r.snap != nil && st.ModTime().Equal(r.modTime) && st.Size() == r.size
	r.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	if err := r.load(st); err != nil {
		monitoring.RecordModelReload(monitoring.ResultFailure)
		r.logger.ErrorContext(ctx, "Model reload failed, keeping current model", slog.Any("error", err))
		return false, err
	}
	monitoring.RecordModelReload(monitoring.ResultSuccess)
	return true, nil
}

// Current returns the loaded snapshot. Callers keep using it for the whole
// request even if a reload swaps it out meanwhile.
func (r *Registry) Current() (prediction.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.snap == nil {
		return nil, fmt.Errorf("%w: no model loaded from %s", apperrors.ErrModelUnavailable, r.path)
	}
	return r.snap, nil
}

func (r *Registry) Info() (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.snap == nil {
		return Info{}, fmt.Errorf("%w: no model loaded from %s", apperrors.ErrModelUnavailable, r.path)
	}
	return Info{
		Version:   r.snap.Version(),
		Path:      r.path,
		Features:  feature.Schema(),
		Threshold: r.snap.Threshold(),
		Scaling:   r.scalingMode,
		LoadedAt:  r.loadedAt,
	}, nil
}
