package destinations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/wqw123/matchzoo/lib/dataset"
)

// JSONLWriter writes each materialized batch as one JSON object per line,
// shaped for downstream training harnesses to stream back in.
type JSONLWriter struct {
	encoder *json.Encoder
	batches int
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(w)}
}

type jsonlBatch struct {
	Features map[string][]any `json:"features"`
	Labels   []float64        `json:"labels"`
}

func (j *JSONLWriter) Handle(_ context.Context, batch dataset.Batch) error {
	if err := j.encoder.Encode(jsonlBatch{Features: batch.Features, Labels: batch.Labels}); err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}
	j.batches++
	return nil
}

func (j *JSONLWriter) OnComplete(_ context.Context) error {
	slog.Info("Finished writing batches", slog.Int("batches", j.batches))
	return nil
}
