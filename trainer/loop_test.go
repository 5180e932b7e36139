package trainer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wqw123/matchzoo/lib/dataset"
	"github.com/wqw123/matchzoo/lib/generator"
	"github.com/wqw123/matchzoo/lib/ptr"
)

type mockHandler struct {
	handleErr   bool
	batchSizes  []int
	completions int
}

func (m *mockHandler) Handle(_ context.Context, batch dataset.Batch) error {
	if m.handleErr {
		return fmt.Errorf("mock error in Handle")
	}
	m.batchSizes = append(m.batchSizes, len(batch.Labels))
	return nil
}

func (m *mockHandler) OnComplete(_ context.Context) error {
	m.completions++
	return nil
}

func makePack(n int) *dataset.Pack {
	instances := make([]dataset.Instance, n)
	for i := range instances {
		instances[i] = dataset.Instance{
			IDLeft:  fmt.Sprintf("q%d", i),
			IDRight: fmt.Sprintf("d%d", i),
			Label:   float64(i % 2),
		}
	}
	return dataset.NewPack(instances)
}

func TestLoop_Run(t *testing.T) {
	{
		// Two epochs over ten instances in batches of four.
		gen, err := generator.New(makePack(10), generator.Config{BatchSize: 4, Shuffle: ptr.ToPtr(false)})
		assert.NoError(t, err)

		handler := &mockHandler{}
		loop := NewLoop(gen, handler, nil, false)
		count, err := loop.Run(context.Background(), 2)
		assert.NoError(t, err)
		assert.Equal(t, 20, count)
		assert.Equal(t, []int{4, 4, 2, 4, 4, 2}, handler.batchSizes)
		assert.Equal(t, 1, handler.completions)
	}
	{
		// Handler errors stop the run.
		gen, err := generator.New(makePack(10), generator.Config{BatchSize: 4})
		assert.NoError(t, err)

		handler := &mockHandler{handleErr: true}
		loop := NewLoop(gen, handler, nil, false)
		_, err = loop.Run(context.Background(), 1)
		assert.ErrorContains(t, err, "failed to handle batch: mock error in Handle")
		assert.Equal(t, 0, handler.completions)
	}
	{
		// Epoch count must be positive.
		gen, err := generator.New(makePack(10), generator.Config{BatchSize: 4})
		assert.NoError(t, err)

		loop := NewLoop(gen, &mockHandler{}, nil, false)
		_, err = loop.Run(context.Background(), 0)
		assert.ErrorContains(t, err, "epochs must be positive, got 0")
	}
}
