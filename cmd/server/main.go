package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/simaogato/geohash-backend/internal/adapter/cache"
	rediscache "github.com/simaogato/geohash-backend/internal/adapter/cache/redis"
	sqlitecache "github.com/simaogato/geohash-backend/internal/adapter/cache/sqlite"
	grpcadapter "github.com/simaogato/geohash-backend/internal/adapter/grpc"
	httpadapter "github.com/simaogato/geohash-backend/internal/adapter/http"
	"github.com/simaogato/geohash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/geohash-backend/internal/adapter/resolver"
	"github.com/simaogato/geohash-backend/internal/adapter/resolver/crox"
	"github.com/simaogato/geohash-backend/internal/breaker"
	"github.com/simaogato/geohash-backend/internal/config"
	"github.com/simaogato/geohash-backend/internal/domain"
	"github.com/simaogato/geohash-backend/internal/logger"
	"github.com/simaogato/geohash-backend/internal/markethours"
	"github.com/simaogato/geohash-backend/internal/metrics"
	"github.com/simaogato/geohash-backend/internal/usecase/geohash"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init("geohash", logger.ParseLevel(cfg.LogLevel))
	m := metrics.NewMetrics()
	ctx := context.Background()

	// 2. Build the market value resolver chain
	marketResolver, closeResolver, err := buildResolver(ctx, cfg, m)
	if err != nil {
		log.Error("failed to build market value resolver", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeResolver()

	// 3. Initialize Services (Use Cases)
	geohashService := geohash.NewGeohashService(marketResolver).WithMetrics(m)

	// 4. Start HTTP server
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpadapter.NewServer(geohashService, m, cfg.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("HTTP server listening", slog.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to serve HTTP", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// 5. Start gRPC server
	grpcServer, healthServer := grpcadapter.NewGRPCServer(geohashService, m)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Error("failed to listen", slog.String("addr", cfg.GRPCAddr), slog.Any("error", err))
		os.Exit(1)
	}
	go func() {
		log.Info("gRPC server listening", slog.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("failed to serve gRPC", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	waitForShutdown(log, httpServer, grpcServer, healthServer)
}

// buildResolver assembles, from the inside out:
// source (crox behind a circuit breaker, or postgres) -> metrics -> cache -> market hours guard
func buildResolver(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (domain.MarketValueResolver, func(), error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				slog.Warn("close failed", slog.Any("error", err))
			}
		}
	}

	var source domain.MarketValueResolver
	switch cfg.Resolver {
	case config.SourcePostgres:
		db, err := postgres.NewDB(ctx, cfg.PostgresConnString())
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, db.Close)
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			closeAll()
			return nil, func() {}, err
		}
		source = postgres.NewMarketValueRepository(db)
	default:
		cb := breaker.New(cfg.BreakerFailures, cfg.BreakerReset)
		cb.OnStateChange = func(from, to breaker.State) {
			m.BreakerState.Set(float64(to))
			if to == breaker.StateOpen {
				m.BreakerTrips.Inc()
			}
			slog.Warn("upstream circuit breaker transition", slog.String("from", from.String()), slog.String("to", to.String()))
		}
		source = breaker.NewResolver(crox.NewClient(cfg.DJIAURL, cfg.DJIATimeout), cb)
	}
	source = resolver.NewInstrumented(cfg.Resolver, source, m)

	switch cfg.Cache {
	case config.CacheSQLite:
		store, err := sqlitecache.Open(cfg.CacheDir)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, store.Close)
		source = cache.NewResolver(config.CacheSQLite, store, source, m)
	case config.CacheRedis:
		store, err := rediscache.NewStore(ctx, rediscache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, store.Close)
		source = cache.NewResolver(config.CacheRedis, store, source, m)
	}

	loc, err := time.LoadLocation(cfg.MarketTimezone)
	if err != nil {
		closeAll()
		return nil, func() {}, err
	}

	return markethours.NewGuard(markethours.NewCalendar(loc), source), closeAll, nil
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(log *slog.Logger, httpServer *http.Server, grpcServer *grpclib.Server, healthServer *health.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("shutting down gracefully", slog.String("signal", sig.String()))

	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP shutdown failed", slog.Any("error", err))
	}

	grpcServer.GracefulStop()
	log.Info("servers stopped")
}
