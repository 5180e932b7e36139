package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/wqw123/matchzoo/lib/dataset"
	"github.com/wqw123/matchzoo/lib/iterator"
	"github.com/wqw123/matchzoo/lib/ptr"
)

const DefaultBatchSize = 32

var (
	ErrInvalidConfig = errors.New("invalid generator config")
	ErrOutOfRange    = errors.New("batch index out of range")
)

// Materializer turns a list of instance indices into a batch. The default
// selects the indices from the dataset and unpacks the subset; callers that
// need different feature shaping supply their own.
type Materializer func(ds dataset.Dataset, indices []int) (dataset.Batch, error)

func defaultMaterializer(ds dataset.Dataset, indices []int) (dataset.Batch, error) {
	subset, err := ds.Select(indices)
	if err != nil {
		return dataset.Batch{}, fmt.Errorf("failed to select instances: %w", err)
	}
	return subset.Unpack()
}

type Config struct {
	// BatchSize is the number of instances per batch. Defaults to [DefaultBatchSize].
	BatchSize int
	// Shuffle controls whether instance order is permuted per epoch. Defaults to true.
	Shuffle *bool
	// Seed seeds the generator's owned random source. Two generators built with
	// the same seed over the same dataset draw the same sequence of
	// permutations. Defaults to the wall clock.
	Seed *int64
	// Materializer overrides how index lists become batches.
	Materializer Materializer
}

func (c *Config) GenerateDefault() {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Shuffle == nil {
		c.Shuffle = ptr.ToPtr(true)
	}
	if c.Seed == nil {
		c.Seed = ptr.ToPtr(time.Now().UnixNano())
	}
	if c.Materializer == nil {
		c.Materializer = defaultMaterializer
	}
}

func (c Config) Validate() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	}
	return nil
}

// Generator partitions dataset indices into fixed-size batches, drawing a
// fresh permutation (when shuffling) on reset and at the end of every epoch.
// It is not safe for concurrent use.
type Generator struct {
	// immutable
	ds          dataset.Dataset
	batchSize   int
	shuffle     bool
	materialize Materializer
	rng         *rand.Rand

	// mutable
	batchIndices [][]int
}

func New(ds dataset.Dataset, cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.GenerateDefault()

	g := &Generator{
		ds:          ds,
		batchSize:   cfg.BatchSize,
		shuffle:     *cfg.Shuffle,
		materialize: cfg.Materializer,
		rng:         rand.New(rand.NewSource(*cfg.Seed)),
	}
	g.setIndices()
	return g, nil
}

// Len returns the number of batches, reading the dataset size live. If the
// dataset changed size since the last [Generator.Reset], this may disagree
// with the stored partition until the next rebuild.
func (g *Generator) Len() int {
	return (g.NumInstances() + g.batchSize - 1) / g.batchSize
}

// NumInstances returns the dataset's current size.
func (g *Generator) NumInstances() int {
	return g.ds.Len()
}

// BatchIndices returns a copy of the instance indices stored for batch i.
func (g *Generator) BatchIndices(i int) ([]int, error) {
	if i < 0 || i >= len(g.batchIndices) {
		return nil, fmt.Errorf("%w: %d, have %d batches", ErrOutOfRange, i, len(g.batchIndices))
	}
	return slices.Clone(g.batchIndices[i]), nil
}

// Batch materializes batch i.
func (g *Generator) Batch(i int) (dataset.Batch, error) {
	if i < 0 || i >= len(g.batchIndices) {
		return dataset.Batch{}, fmt.Errorf("%w: %d, have %d batches", ErrOutOfRange, i, len(g.batchIndices))
	}
	return g.materialize(g.ds, g.batchIndices[i])
}

// BatchRange materializes batches [start, end) as one combined batch: the
// stored index lists are concatenated in order and unpacked with a single
// call, so the result spans multiple batches rather than being a list of them.
func (g *Generator) BatchRange(start, end int) (dataset.Batch, error) {
	if start < 0 || end < start || end > len(g.batchIndices) {
		return dataset.Batch{}, fmt.Errorf("%w: [%d, %d), have %d batches", ErrOutOfRange, start, end, len(g.batchIndices))
	}

	var indices []int
	for _, batch := range g.batchIndices[start:end] {
		indices = append(indices, batch...)
	}
	return g.materialize(g.ds, indices)
}

// Reset rebuilds the index partition unconditionally.
func (g *Generator) Reset() {
	g.setIndices()
}

// OnEpochEnd rebuilds the index partition once a full pass completes. Intended
// to be invoked by the host training loop.
func (g *Generator) OnEpochEnd() {
	g.setIndices()
}

// Iter returns an iterator over the current epoch's batches.
func (g *Generator) Iter() iterator.Iterator[dataset.Batch] {
	return &epochIterator{gen: g}
}

func (g *Generator) setIndices() {
	numInstances := g.ds.Len()
	var indexPool []int
	if g.shuffle {
		indexPool = g.rng.Perm(numInstances)
	} else {
		indexPool = make([]int, numInstances)
		for i := range indexPool {
			indexPool[i] = i
		}
	}

	batchCount := (numInstances + g.batchSize - 1) / g.batchSize
	batchIndices := make([][]int, 0, batchCount)
	for i := 0; i < batchCount; i++ {
		upper := min((i+1)*g.batchSize, numInstances)
		batchIndices = append(batchIndices, indexPool[i*g.batchSize:upper])
	}
	g.batchIndices = batchIndices
}

type epochIterator struct {
	gen   *Generator
	index int
}

func (e *epochIterator) HasNext() bool {
	return e.index < len(e.gen.batchIndices)
}

func (e *epochIterator) Next() (dataset.Batch, error) {
	if !e.HasNext() {
		return dataset.Batch{}, fmt.Errorf("iterator has finished")
	}
	batch, err := e.gen.Batch(e.index)
	if err != nil {
		return dataset.Batch{}, err
	}
	e.index++
	return batch, nil
}
