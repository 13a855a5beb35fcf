package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/eaudeweb/lawkit/internal/config"
	"github.com/eaudeweb/lawkit/internal/storage/es"
	"github.com/eaudeweb/lawkit/internal/storage/pg"
	"github.com/eaudeweb/lawkit/pkg/config/env"
	"github.com/eaudeweb/lawkit/pkg/stringsutil"
)

const defaultBatchSize = 500

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type LawIndexConfig struct {
	Explorer  config.Explorer
	Pool      pg.PoolConfig
	Client    es.ClientConfig
	BatchSize int
}

func (as *AppConfig) Load() (*LawIndexConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/lawindex/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	addressesEnv := os.Getenv("ES_ADDRESSES")
	if addressesEnv == "" {
		return nil, fmt.Errorf("ES_ADDRESSES is required")
	}
	addresses := strings.Split(addressesEnv, ",")
	for i, a := range addresses {
		addresses[i] = strings.TrimSpace(a)
	}
	addresses = stringsutil.RemoveEmptyStrings(addresses)

	indexName := os.Getenv("ES_INDEX")
	if indexName == "" {
		indexName = "legislation"
	}

	batchSize := defaultBatchSize
	if raw := os.Getenv("BATCH_SIZE"); raw != "" {
		batchSize, err = strconv.Atoi(raw)
		if err != nil || batchSize < 1 {
			return nil, fmt.Errorf("BATCH_SIZE must be a positive number")
		}
	}

	return &LawIndexConfig{
		Explorer: config.DefaultExplorer(),
		Pool:     pg.PoolConfig{ConnStr: connStr},
		Client: es.ClientConfig{
			Addresses: addresses,
			IndexName: indexName,
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		},
		BatchSize: batchSize,
	}, nil
}
