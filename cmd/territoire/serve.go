package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jbweber/homelab/territoire/internal/api"
	"github.com/jbweber/homelab/territoire/internal/cache"
	"github.com/jbweber/homelab/territoire/internal/config"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
	"github.com/jbweber/homelab/territoire/internal/repository"
	"github.com/jbweber/homelab/territoire/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	ds, err := cfg.InitializeDatastore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()

	stmts := repository.NewPreparedStatementCache(ds.DB)
	defer func() { _ = stmts.Close() }()

	statsCache, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	m := metrics.New()
	departementRepo := repository.NewDepartementRepository(ds, stmts)
	villeRepo := repository.NewVilleRepository(ds, stmts)
	departements := service.NewDepartementService(ds, departementRepo, villeRepo, statsCache, m, log)
	villes := service.NewVilleService(ds, departementRepo, villeRepo, statsCache, m, log)

	router := api.NewRouter(api.NewAPI(departements, villes, m, log), prometheus.DefaultGatherer)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting territoire web service", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openCache connects to redis when an address is configured. A server that
// cannot be reached disables caching instead of failing the start.
func openCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (cache.Cache, func()) {
	c, closeFn, err := connectCache(ctx, cfg, log)
	if err != nil {
		log.Warn("stats cache disabled", "addr", cfg.RedisAddr, "error", err)
		return cache.Noop{}, func() {}
	}
	return c, closeFn
}

// connectCache returns the configured stats cache. Unlike openCache it
// reports an unreachable redis, since a write that cannot bump stats
// versions would leave the server serving stale statistics.
func connectCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (cache.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.Noop{}, func() {}, nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	r, err := cache.NewRedis(pingCtx, cfg.RedisAddr, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("stats cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	return r, func() {
		if err := r.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}, nil
}
