package trainer

import (
	"context"

	"github.com/wqw123/matchzoo/lib/dataset"
)

// BatchHandler consumes materialized batches, e.g. a model's train step or a
// writer that stages batches for an external harness.
type BatchHandler interface {
	Handle(ctx context.Context, batch dataset.Batch) error
	OnComplete(ctx context.Context) error
}
