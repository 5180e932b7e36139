package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wqw123/matchzoo/lib/generator"
	"github.com/wqw123/matchzoo/lib/mtr"
)

type Loop struct {
	gen         *generator.Generator
	handler     BatchHandler
	statsD      *mtr.Client
	logProgress bool
}

func NewLoop(gen *generator.Generator, handler BatchHandler, statsD *mtr.Client, logProgress bool) Loop {
	return Loop{gen: gen, handler: handler, statsD: statsD, logProgress: logProgress}
}

// Run feeds every batch of every epoch to the handler, reorganizing the
// generator's partition between epochs. Returns the total number of instances
// handled.
func (l *Loop) Run(ctx context.Context, epochs int) (int, error) {
	if epochs <= 0 {
		return 0, fmt.Errorf("epochs must be positive, got %d", epochs)
	}

	runID := uuid.New().String()
	start := time.Now()
	var count int
	for epoch := 0; epoch < epochs; epoch++ {
		epochStart := time.Now()
		iter := l.gen.Iter()
		var batchIndex int
		for iter.HasNext() {
			batchStart := time.Now()
			batch, err := iter.Next()
			if err != nil {
				return 0, fmt.Errorf("failed to materialize batch: %w", err)
			}

			if err = l.handler.Handle(ctx, batch); err != nil {
				return 0, fmt.Errorf("failed to handle batch: %w", err)
			}
			count += len(batch.Labels)

			if l.statsD != nil {
				tags := map[string]string{"run": runID}
				(*l.statsD).Timing("batch.handle", time.Since(batchStart), tags)
				(*l.statsD).Count("batch.instances", int64(len(batch.Labels)), tags)
			}

			if l.logProgress {
				slog.Info("Feed progress",
					slog.String("runID", runID),
					slog.Int("epoch", epoch),
					slog.Int("batch", batchIndex),
					slog.Int("totalInstances", count),
					slog.Duration("totalDuration", time.Since(start)),
				)
			}
			batchIndex++
		}

		l.gen.OnEpochEnd()
		slog.Info("Epoch complete",
			slog.String("runID", runID),
			slog.Int("epoch", epoch),
			slog.Duration("epochDuration", time.Since(epochStart)),
		)
	}

	if err := l.handler.OnComplete(ctx); err != nil {
		return 0, fmt.Errorf("failed running handler OnComplete: %w", err)
	}
	return count, nil
}
