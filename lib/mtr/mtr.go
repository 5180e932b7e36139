package mtr

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DataDog/datadog-go/v5/statsd"
)

func New(namespace string, tags []string, samplingRate float64) (Client, error) {
	host := os.Getenv("TELEMETRY_HOST")
	port := os.Getenv("TELEMETRY_PORT")
	address := DefaultAddr
	if host != "" && port != "" {
		address = fmt.Sprintf("%s:%s", host, port)
		slog.Info("Overriding telemetry address with env vars", slog.String("address", address))
	}

	// cmp.Or(namespace, DefaultNamespace) requires Go 1.22; inlined for Go 1.21.
	effectiveNamespace := namespace
	if effectiveNamespace == "" {
		effectiveNamespace = DefaultNamespace
	}

	datadogClient, err := statsd.New(address,
		statsd.WithNamespace(effectiveNamespace),
		statsd.WithTags(tags),
	)
	if err != nil {
		return nil, err
	}

	return &statsClient{
		client: datadogClient,
		rate:   samplingRate,
	}, nil
}
