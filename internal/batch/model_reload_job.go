package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Reloader swaps in a changed model artifact and reports whether it did.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

type ModelReloadJob struct {
	reloader Reloader
	logger   *slog.Logger
}

func NewModelReloadJob(reloader Reloader, logger *slog.Logger) *ModelReloadJob {
	if reloader == nil || logger == nil {
		panic("ModelReloadJob dependencies cannot be nil")
	}
	return &ModelReloadJob{
		reloader: reloader,
		logger:   logger.With("job", "ModelReload"),
	}
}

func (j *ModelReloadJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Checking model artifact for changes.")

	changed, err := j.reloader.Reload(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Model reload failed.", slog.Any("error", err))
		return fmt.Errorf("model reload failed: %w", err)
	}

	if changed {
		j.logger.InfoContext(ctx, "Model artifact reloaded.", slog.Duration("duration", time.Since(startTime)))
	} else {
		j.logger.DebugContext(ctx, "Model artifact unchanged.")
	}
	return nil
}
