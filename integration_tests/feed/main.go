package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wqw123/matchzoo/destinations"
	"github.com/wqw123/matchzoo/lib/dataset"
	"github.com/wqw123/matchzoo/lib/generator"
	"github.com/wqw123/matchzoo/lib/logger"
	"github.com/wqw123/matchzoo/lib/ptr"
	"github.com/wqw123/matchzoo/trainer"
)

const (
	numInstances = 49
	batchSize    = 8
	epochs       = 3
)

func main() {
	tempDir, err := os.MkdirTemp("", "feed-test")
	if err != nil {
		logger.Fatal("Failed to create temp dir", slog.Any("err", err))
	}
	defer os.RemoveAll(tempDir)

	datasetPath := filepath.Join(tempDir, "train.tsv")
	if err = writeDataset(datasetPath); err != nil {
		logger.Fatal("Failed to write dataset", slog.Any("err", err))
	}

	outputPath := filepath.Join(tempDir, "batches.jsonl")
	if err = feed(datasetPath, outputPath); err != nil {
		logger.Fatal("Feed failed", slog.Any("err", err))
	}

	if err = verify(outputPath); err != nil {
		logger.Fatal("Verification failed", slog.Any("err", err))
	}

	slog.Info("✅ Test succeeded")
}

func writeDataset(fp string) error {
	file, err := os.Create(fp)
	if err != nil {
		return err
	}
	defer file.Close()

	for i := 0; i < numInstances; i++ {
		_, err = fmt.Fprintf(file, "q%d\tquery %d\td%d\tdocument %d\t%d\n", i, i, i, i, i%2)
		if err != nil {
			return err
		}
	}
	return nil
}

func feed(datasetPath string, outputPath string) error {
	pack, err := dataset.LoadPack(datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	if pack.Len() != numInstances {
		return fmt.Errorf("expected %d instances, got %d", numInstances, pack.Len())
	}

	gen, err := generator.New(pack, generator.Config{BatchSize: batchSize, Seed: ptr.ToPtr[int64](42)})
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer output.Close()

	loop := trainer.NewLoop(gen, destinations.NewJSONLWriter(output), nil, false)
	count, err := loop.Run(context.Background(), epochs)
	if err != nil {
		return fmt.Errorf("failed to run feed loop: %w", err)
	}

	if count != numInstances*epochs {
		return fmt.Errorf("expected %d instances fed, got %d", numInstances*epochs, count)
	}
	return nil
}

func verify(outputPath string) error {
	file, err := os.Open(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer file.Close()

	batchesPerEpoch := (numInstances + batchSize - 1) / batchSize

	var batches int
	seen := map[string]int{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var batch struct {
			Features map[string][]any `json:"features"`
			Labels   []float64        `json:"labels"`
		}
		if err = json.Unmarshal(scanner.Bytes(), &batch); err != nil {
			return fmt.Errorf("failed to unmarshal batch: %w", err)
		}

		ids := batch.Features[dataset.ColumnIDLeft]
		if len(ids) != len(batch.Labels) {
			return fmt.Errorf("feature/label length mismatch: %d vs %d", len(ids), len(batch.Labels))
		}

		for _, id := range ids {
			seen[fmt.Sprint(id)]++
		}
		batches++
	}
	if err = scanner.Err(); err != nil {
		return err
	}

	if batches != batchesPerEpoch*epochs {
		return fmt.Errorf("expected %d batches, got %d", batchesPerEpoch*epochs, batches)
	}

	// Every instance shows up exactly once per epoch.
	if len(seen) != numInstances {
		return fmt.Errorf("expected %d distinct instances, got %d", numInstances, len(seen))
	}
	for id, occurrences := range seen {
		if occurrences != epochs {
			return fmt.Errorf("instance %s fed %d times, expected %d", id, occurrences, epochs)
		}
	}
	return nil
}
