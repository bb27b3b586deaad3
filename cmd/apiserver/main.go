// MateriaScout API server entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/materiascout/materiascout/internal/application/query"
	"github.com/materiascout/materiascout/internal/config"
	"github.com/materiascout/materiascout/internal/extractor"
	"github.com/materiascout/materiascout/internal/infrastructure/materials"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/logging"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/materiascout/materiascout/internal/interfaces/http"
	"github.com/materiascout/materiascout/internal/interfaces/http/handlers"
	"github.com/materiascout/materiascout/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, setLogLevel, err := logging.NewDynamicLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return err
	}

	// Hot-reload the log level when the config file changes; every other
	// setting needs a restart.
	if _, statErr := os.Stat(configPath); statErr == nil {
		level := cfg.Log.Level
		config.Watch(configPath, func(next *config.Config) {
			if next.Log.Level == level {
				return
			}
			level = next.Log.Level
			setLogLevel(level)
			logger.Info("log level updated", logging.String("level", level))
		})
	}

	logger.Info("starting MateriaScout API server",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.String("built", BuildDate),
		logging.Int("port", cfg.Server.Port),
		logging.Bool("demo_mode", cfg.Demo.Enabled),
	)

	searcher, readyCheck, err := buildSearcher(cfg, logger)
	if err != nil {
		return err
	}
	searcherName := readyCheck.Component

	lex := extractor.DefaultLexicon()
	if cfg.Extractor.LexiconPath != "" {
		lex, err = extractor.LoadLexiconFile(cfg.Extractor.LexiconPath)
		if err != nil {
			return fmt.Errorf("load lexicon: %w", err)
		}
	}
	ext := extractor.New(lex, nil)

	var (
		collector  prometheus.MetricsCollector
		appMetrics *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
			EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
		}, logger)
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		appMetrics = prometheus.NewAppMetrics(collector)
		appMetrics.SetHealth(searcherName, true)
	}

	service := query.NewService(ext, searcher, logger).
		WithDefaultMaxResults(cfg.Query.DefaultMaxResults)
	if appMetrics != nil {
		service.WithMetrics(appMetrics)
	}

	limiter := middleware.NewTokenBucketLimiter(
		float64(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst, 5*time.Minute)
	defer limiter.Stop()

	healthHandler := handlers.NewHealthHandler(Version, readyCheck)

	var corsCfg *middleware.CORSConfig
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		cc := middleware.DefaultCORSConfig()
		cc.AllowedOrigins = cfg.Server.CORSAllowedOrigins
		corsCfg = &cc
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		QueryHandler:     handlers.NewQueryHandler(service, cfg.Upstream.APIKey, logger),
		SearchHandler:    handlers.NewSearchHandler(searcher, cfg.Upstream.APIKey, logger),
		HealthHandler:    healthHandler,
		Logger:           logger,
		CORSConfig:       corsCfg,
		RateLimiter:      limiter,
		Metrics:          appMetrics,
		MetricsCollector: collector,
		MaxBodySize:      cfg.Server.MaxBodySize,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// loadConfig reads the config file when it exists, otherwise builds the
// configuration from defaults and SCOUT_ environment variables so the
// server can run without any file on disk.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

// buildSearcher selects the demo store or the live client and pairs it
// with the matching readiness check: fixture presence for the demo store,
// an actual upstream round-trip for the live client.
func buildSearcher(cfg *config.Config, logger logging.Logger) (materials.Searcher, handlers.CheckerFunc, error) {
	if cfg.Demo.Enabled {
		store, err := materials.NewDemoStore(cfg.Demo.FixturePath, logger)
		if err != nil {
			return nil, handlers.CheckerFunc{}, fmt.Errorf("load demo fixture: %w", err)
		}
		logger.Info("running against the bundled demo store",
			logging.Int("materials", store.Len()),
			logging.String("fixture", cfg.Demo.FixturePath))
		check := handlers.CheckerFunc{
			Component: "demo_store",
			Fn: func(ctx context.Context) error {
				_, err := store.ListProperties(ctx, "")
				return err
			},
		}
		return store, check, nil
	}

	client, err := materials.NewClient(materials.ClientConfig{
		BaseURL:        cfg.Upstream.BaseURL,
		RequestTimeout: cfg.Upstream.RequestTimeout,
		MaxLimit:       cfg.Upstream.MaxLimit,
	}, logger)
	if err != nil {
		return nil, handlers.CheckerFunc{}, err
	}
	check := handlers.CheckerFunc{
		Component: "materials_api",
		Fn: func(ctx context.Context) error {
			return client.Ping(ctx, cfg.Upstream.APIKey)
		},
	}
	return client, check, nil
}
