package app

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/infrastructure/cache"
	"github.com/doeshing/serpkit-go/internal/infrastructure/config"
	"github.com/doeshing/serpkit-go/internal/infrastructure/dataforseo"
	"github.com/doeshing/serpkit-go/internal/infrastructure/history"
	"github.com/doeshing/serpkit-go/internal/infrastructure/webpage"
	"github.com/doeshing/serpkit-go/internal/pkg/logger"
	"github.com/doeshing/serpkit-go/internal/ports"
	"github.com/doeshing/serpkit-go/internal/services"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger

	Expander  *services.PAAExpander
	Runner    *services.Runner
	SERP      *services.SERPService
	LocalPack *services.LocalPackService
	TopNews   *services.TopNewsService
	Locations *services.LocationsService
	Sitemap   *services.SitemapService
	Schema    *services.SchemaService
	Doctor    *services.Doctor

	HistoryStore ports.RunRecorder
	CatalogCache ports.CatalogCache
}

// BuildContainer constructs the dependency graph. The rate limiter is
// shared by every provider-bound service so the whole process stays
// under the configured quota.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)

	perMinute := cfg.RateLimit.RequestsPerMinute
	if perMinute < 1 {
		perMinute = 30
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)

	client := dataforseo.NewClient(cfg.Credentials, limiter, nil)
	fetcher := webpage.NewFetcher(nil)
	historyStore := history.NewSQLiteStore()
	catalogCache := cache.NewCatalogCache()

	expander := &services.PAAExpander{Source: client, Logger: log}

	concurrency := cfg.Defaults.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,

		Expander:  expander,
		Runner:    &services.Runner{Expander: expander, Concurrency: concurrency, Logger: log},
		SERP:      &services.SERPService{Source: client, Logger: log},
		LocalPack: &services.LocalPackService{Source: client, Logger: log},
		TopNews:   &services.TopNewsService{Source: client, Logger: log},
		Locations: &services.LocationsService{Catalog: client, Cache: catalogCache, Logger: log},
		Sitemap:   &services.SitemapService{Fetcher: fetcher, Logger: log},
		Schema:    &services.SchemaService{Fetcher: fetcher, Logger: log},
		Doctor:    &services.Doctor{Config: cfgLoader, Catalog: client},

		HistoryStore: historyStore,
		CatalogCache: catalogCache,
	}, nil
}
