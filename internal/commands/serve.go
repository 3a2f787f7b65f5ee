package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-tracker/api"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/guard"
	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

func newServeCommand() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if migrateFirst {
				cfg.AutoMigrate = true
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	logger.Info("finance-tracker starting")

	if cfg.AutoMigrate {
		if err := migrate(cfg.PostgresDSN(), logger); err != nil {
			return err
		}
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logger.WithError(err).Error("storage.NewStorage")
		return err
	}
	defer store.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	totals := newTotalsCache(cfg, logger)
	delegator := operator.NewOperatorDelegator(store, totals, cfg.OperatorWorkers, logger)
	svc := service.NewService(store, delegator, totals, tokens)

	rest := api.Rest{
		Logger:  logger,
		Port:    cfg.HTTPPort,
		Service: svc,
		Tokens:  tokens,
		Guard:   guard.NewOwnershipGuard(store.Transactions, store.Categories),
		DB:      store,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	served := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(served)
		return rest.Serve(gctx)
	})
	// The pool outlives the HTTP server so in-flight handlers can finish
	// their writes. Handlers still running after the shutdown timeout get
	// operator.ErrStopped.
	g.Go(func() error {
		delegator.Start()
		<-served
		delegator.Stop()
		return nil
	})
	return g.Wait()
}

// newTotalsCache falls back to no caching when memcached is not configured
// or unreachable at startup.
func newTotalsCache(cfg *config.Config, logger *logrus.Logger) cache.TotalsCache {
	if len(cfg.MemcacheHosts) == 0 {
		return cache.Noop{}
	}
	mc, err := cache.NewMemcache(cfg.MemcacheHosts, logger)
	if err != nil {
		logger.WithError(err).Warn("cache.NewMemcache, totals will not be cached")
		return cache.Noop{}
	}
	return mc
}
