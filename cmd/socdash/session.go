package main

import (
	"fmt"

	"socdash/config"
	"socdash/internal/hunt"
	"socdash/internal/logger"
	"socdash/internal/output/hunthttp"
	"socdash/internal/output/huntjson"
	"socdash/internal/output/huntredis"
	"socdash/internal/pipeline"
)

func newHuntBackend(cfg config.HuntConfig) (*hunt.SimulatedBackend, error) {
	var (
		catalog *hunt.Catalog
		err     error
	)
	if cfg.Catalog != "" {
		catalog, err = hunt.LoadCatalog(cfg.Catalog)
	} else {
		catalog, err = hunt.DefaultCatalog()
	}
	if err != nil {
		return nil, err
	}

	classifier, err := hunt.NewSigmaClassifier(catalog)
	if err != nil {
		return nil, err
	}

	sc := hunt.SimulatedConfig{
		LatencyMin:       cfg.LatencyMin,
		LatencyMax:       cfg.LatencyMax,
		EmptyProbability: 0.2,
		MaxFallback:      cfg.MaxFallback,
		Seed:             cfg.Seed,
	}
	if cfg.EmptyProbability != nil {
		sc.EmptyProbability = *cfg.EmptyProbability
	}
	logger.Debugf("Hunt backend: %d categories, %d fallback findings, latency %s-%s",
		len(catalog.Categories), len(catalog.Fallback), sc.LatencyMin, sc.LatencyMax)
	return hunt.NewSimulatedBackend(sc, classifier, catalog.Fallback), nil
}

// newHuntWriter opens the configured sink. Mode "none" yields a nil writer.
func newHuntWriter(cfg config.OutputConfig) (pipeline.HuntWriter, error) {
	switch cfg.Mode {
	case "", "none":
		return nil, nil
	case "file":
		return huntjson.NewWriter(cfg.File.Path)
	case "http":
		return hunthttp.NewWriter(hunthttp.Config{
			URL:     cfg.HTTP.URL,
			Timeout: cfg.HTTP.Timeout,
			Headers: cfg.HTTP.Headers,
		})
	case "redis":
		return huntredis.NewWriter(huntredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
			MaxLen:   cfg.Redis.MaxLen,
		})
	default:
		return nil, fmt.Errorf("unknown output mode: %s", cfg.Mode)
	}
}
