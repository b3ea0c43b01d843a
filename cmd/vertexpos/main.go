package main

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vertex-pos/internal/app"
	"github.com/nikolayk812/vertex-pos/internal/catalog"
	"github.com/nikolayk812/vertex-pos/internal/checkout"
	"github.com/nikolayk812/vertex-pos/internal/console"
	"github.com/nikolayk812/vertex-pos/internal/migrations"
	"github.com/nikolayk812/vertex-pos/internal/report"
	"github.com/nikolayk812/vertex-pos/internal/repository"
	"github.com/nikolayk812/vertex-pos/internal/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("app.LoadConfig: %w", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("app.NewLogger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.PGDSN); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	catalogOpts := []catalog.Option{
		catalog.WithTTL(cfg.CatalogTTL),
		catalog.WithMaxResults(cfg.CatalogMaxResults),
		catalog.WithLogger(logger.Named("catalog")),
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", zap.Error(err))
			}
		}()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping failed, catalog snapshots stay local", zap.Error(err))
		} else {
			catalogOpts = append(catalogOpts, catalog.WithSnapshotStore(catalog.NewRedisSnapshotStore(redisClient)))
		}
	}

	products := repository.NewProduct(pool)
	customers := repository.NewCustomer(pool)
	sales := repository.NewSale(pool)

	cat := catalog.New(products, customers, catalogOpts...)
	if err := cat.Warm(ctx); err != nil {
		logger.Warn("catalog warm-up failed, starting with empty catalog", zap.Error(err))
	}

	svc := checkout.NewService(sales, products,
		checkout.WithLogger(logger.Named("checkout")),
		checkout.WithFolioGenerator(checkout.NewFolioGenerator(cfg.FolioPrefix, nil)))

	sess := session.New(cat, svc, logger.Named("session"))
	reporter := report.NewReporter(sales, cfg.Location(), cfg.ReportWindow)

	logger.Info("till ready",
		zap.String("session_id", sess.ID().String()),
		zap.String("currency", cfg.CurrencyUnit().String()),
		zap.String("timezone", cfg.Timezone))

	return console.New(sess, cat, reporter, logger,
		console.WithCurrency(cfg.CurrencyUnit())).Run(ctx, os.Stdin, os.Stdout)
}
