package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/meridian/internal/config"
	"github.com/UnknownOlympus/meridian/internal/dataset"
	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/graph"
	"github.com/UnknownOlympus/meridian/internal/mapview"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/mst"
	"github.com/UnknownOlympus/meridian/internal/repository"
	"github.com/UnknownOlympus/meridian/internal/service"
	"github.com/UnknownOlympus/meridian/internal/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// Exit codes.
const (
	exitOK = iota
	exitConfig
	exitSource
	exitNoData
	exitFailure
)

func main() {
	os.Exit(run())
}

// run builds one map and optionally serves it. It returns the process exit code.
func run() int {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return exitConfig
	}

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Configuration-dependent collaborators are built before any data is touched.
	renderer, err := mapview.NewRenderer(mapview.Format(cfg.OutputFormat), cfg.OutputDir)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to set up map renderer", "error", err)
		return exitConfig
	}

	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Type),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: cfg.Geocoder.RateLimit,
		Region:    cfg.Geocoder.Region,
		Logger:    logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create geocoding provider", "error", err)
		return exitConfig
	}

	src, health, closeSource, err := setupSource(ctx, cfg, provider, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to set up data source", "error", err)
		return exitSource
	}
	defer closeSource()

	pipeline := service.NewPipeline(
		logger,
		src,
		graph.NewBuilder(logger, cfg.Workers),
		mst.Method(cfg.MSTMethod),
		renderer,
		appMetrics,
		cfg.Zoom,
	)

	res, err := pipeline.Run(ctx, string(cfg.Dataset))
	if err != nil {
		return report(ctx, logger, err)
	}

	fmt.Fprintf(os.Stdout, "Map for %s written to %s (%d nodes, tree weight %.4f)\n",
		cfg.Dataset, res.Path, len(res.Graph.Nodes), res.Tree.Weight)

	if cfg.ServePort > 0 {
		serve(ctx, logger, reg, health, res.Path, cfg.ServePort)
	}

	return exitOK
}

// setupSource returns the configured source, a health check for it and a cleanup function.
// A non-nil provider wraps the source with coordinate backfill.
func setupSource(
	ctx context.Context,
	cfg *config.Config,
	provider geocoding.Provider,
	logger *slog.Logger,
) (source.Source, func(context.Context) error, func(), error) {
	var (
		src     source.Source
		health  = func(context.Context) error { return nil }
		cleanup = func() {}
	)

	switch cfg.Source {
	case config.SourcePostgres:
		dtb, err := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %w", source.ErrSourceUnavailable, err)
		}
		repo := repository.NewRepository(dtb, logger)
		src = source.NewPostgres(repo, string(cfg.Dataset), cfg.TableName())
		health = repo.Ping
		cleanup = dtb.Close
	default:
		src = source.NewCSV(string(cfg.Dataset), cfg.DatasetPath())
	}

	if provider != nil {
		logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoder.Type)
		src = source.NewGeocoded(src, provider, cfg.Geocoder.AddrPrefix, logger)
	}

	return src, health, cleanup, nil
}

// report logs a failed run with a message naming its class and returns the exit code.
func report(ctx context.Context, logger *slog.Logger, err error) int {
	switch {
	case errors.Is(err, source.ErrSourceUnavailable):
		logger.ErrorContext(ctx, "Data source unavailable", "error", err)
		return exitSource
	case errors.Is(err, dataset.ErrNoUsableData):
		logger.ErrorContext(ctx, "No usable data in the dataset, no map was written", "error", err)
		return exitNoData
	case errors.Is(err, mst.ErrUnknownMethod):
		logger.ErrorContext(ctx, "Unknown spanning tree method", "error", err)
		return exitConfig
	case errors.Is(err, context.Canceled):
		logger.WarnContext(ctx, "Run interrupted, no map was written")
		return exitFailure
	default:
		logger.ErrorContext(ctx, "Map build failed, no map was written", "error", err)
		return exitFailure
	}
}

// serve exposes the artifact, a health check and metrics until the context is cancelled.
func serve(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	health func(context.Context) error,
	artifact string,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(writer http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(writer, req)
			return
		}
		http.ServeFile(writer, req, artifact)
	})
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := health(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(readTimeout)*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(shutdownCtx, "Server shutdown failed", "error", err)
		}
	}()

	log.InfoContext(ctx, "Serving map. Press Ctrl+C to stop.", "port", port, "artifact", artifact)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Server failed", "error", err)
		return
	}

	log.InfoContext(context.Background(), "Server stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return a
}
