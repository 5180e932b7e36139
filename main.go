package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wqw123/matchzoo/config"
	"github.com/wqw123/matchzoo/destinations"
	"github.com/wqw123/matchzoo/lib/dataset"
	"github.com/wqw123/matchzoo/lib/generator"
	"github.com/wqw123/matchzoo/lib/logger"
	"github.com/wqw123/matchzoo/lib/mtr"
	"github.com/wqw123/matchzoo/trainer"
)

func setUpMetrics(cfg *config.Metrics) (*mtr.Client, error) {
	if cfg == nil {
		return nil, nil
	}

	slog.Info("Creating metrics client")
	client, err := mtr.New(cfg.Namespace, cfg.Tags, 0.5)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func setUpHandler(cfg *config.Training) (trainer.BatchHandler, func(), error) {
	if cfg.OutputPath == "" {
		return destinations.NewJSONLWriter(os.Stdout), func() {}, nil
	}

	file, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return destinations.NewJSONLWriter(file), func() { _ = file.Close() }, nil
}

func main() {
	var configFilePath string
	flag.StringVar(&configFilePath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.ReadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to read config file", slog.Any("err", err))
	}

	_logger, cleanUpHandlers := logger.NewLogger(cfg)
	slog.SetDefault(_logger)
	defer cleanUpHandlers()

	statsD, err := setUpMetrics(cfg.Metrics)
	if err != nil {
		logger.Fatal("Failed to set up metrics", slog.Any("err", err))
	}

	pack, err := dataset.LoadPack(cfg.Dataset.FilePath)
	if err != nil {
		logger.Fatal("Failed to load dataset", slog.Any("err", err))
	}
	slog.Info("Loaded dataset",
		slog.String("filePath", cfg.Dataset.FilePath),
		slog.Int("instances", pack.Len()),
	)

	gen, err := generator.New(pack, generator.Config{
		BatchSize: cfg.Generator.BatchSize,
		Shuffle:   cfg.Generator.Shuffle,
		Seed:      cfg.Generator.Seed,
	})
	if err != nil {
		logger.Fatal("Failed to build batch generator", slog.Any("err", err))
	}

	handler, closeHandler, err := setUpHandler(cfg.Training)
	if err != nil {
		logger.Fatal("Failed to set up output", slog.Any("err", err))
	}
	defer closeHandler()

	loop := trainer.NewLoop(gen, handler, statsD, cfg.Training.LogProgress)
	count, err := loop.Run(context.Background(), cfg.Training.Epochs)
	if err != nil {
		logger.Fatal("Failed to feed batches", slog.Any("err", err))
	}

	slog.Info("Finished",
		slog.Int("epochs", cfg.Training.Epochs),
		slog.Int("instancesFed", count),
	)
}
