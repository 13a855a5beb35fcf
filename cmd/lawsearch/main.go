package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/eaudeweb/lawkit/internal/explorer"
	"github.com/eaudeweb/lawkit/internal/router"
	"github.com/eaudeweb/lawkit/internal/server"
	"github.com/eaudeweb/lawkit/internal/storage/es"
	"github.com/eaudeweb/lawkit/internal/storage/pg"
	pkgserver "github.com/eaudeweb/lawkit/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	ctx := context.Background()

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	pool, err := pg.NewConnectionPool(ctx, cfg.Pool)
	if err != nil {
		slog.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	searcher, err := es.NewSearcher(cfg.Client, cfg.Explorer)
	if err != nil {
		slog.Error("Failed to create searcher", "error", err)
		os.Exit(1)
	}

	esChecker, err := es.NewHealthChecker(cfg.Client)
	if err != nil {
		slog.Error("Failed to create elasticsearch health checker", "error", err)
		os.Exit(1)
	}

	exp := explorer.NewExplorer(
		cfg.Explorer,
		pg.NewLawStore(pool),
		pg.NewTaxonomyStore(pool),
		pg.NewCountryStore(pool),
		searcher,
	)

	s := server.NewServer(echo.New(), sCfg)

	router.NewLegislationRouter(s.Echo, exp).Bind()
	router.NewHealthRouter(s.Echo, map[string]pkgserver.HealthChecker{
		"postgres":      pg.NewHealthChecker(pool),
		"elasticsearch": esChecker,
	}).Bind()

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Legislation explorer API is running")
	})

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
