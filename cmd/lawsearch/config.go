package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/eaudeweb/lawkit/internal/config"
	"github.com/eaudeweb/lawkit/internal/storage/es"
	"github.com/eaudeweb/lawkit/internal/storage/pg"
	"github.com/eaudeweb/lawkit/pkg/config/env"
	"github.com/eaudeweb/lawkit/pkg/stringsutil"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type LawSearchConfig struct {
	Explorer config.Explorer
	Pool     pg.PoolConfig
	Client   es.ClientConfig
}

func (as *AppConfig) Load() (*LawSearchConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/lawsearch/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	explorerCfg, err := loadExplorerConfig()
	if err != nil {
		return nil, err
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	clientCfg, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	return &LawSearchConfig{
		Explorer: explorerCfg,
		Pool:     pg.PoolConfig{ConnStr: connStr},
		Client:   clientCfg,
	}, nil
}

func loadExplorerConfig() (config.Explorer, error) {
	path := os.Getenv("EXPLORER_CONFIG")
	if path == "" {
		return config.DefaultExplorer(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config.Explorer{}, fmt.Errorf("failed to open explorer config: %w", err)
	}
	defer f.Close()

	return config.LoadExplorer(f)
}

func loadClientConfig() (es.ClientConfig, error) {
	addressesEnv := os.Getenv("ES_ADDRESSES")
	if addressesEnv == "" {
		return es.ClientConfig{}, fmt.Errorf("ES_ADDRESSES is required")
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

	return es.ClientConfig{
		Addresses: addresses,
		IndexName: indexName,
		Username:  os.Getenv("ES_USERNAME"),
		Password:  os.Getenv("ES_PASSWORD"),
	}, nil
}
