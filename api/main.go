package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/hplussport-catalog/internal/config"
	"github.com/rogerio-castellano/hplussport-catalog/internal/db"
	"github.com/rogerio-castellano/hplussport-catalog/internal/events"
	"github.com/rogerio-castellano/hplussport-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/hplussport-catalog/internal/http/router"
	"github.com/rogerio-castellano/hplussport-catalog/internal/http/server"
	"github.com/rogerio-castellano/hplussport-catalog/internal/redissvc"
	"github.com/rogerio-castellano/hplussport-catalog/internal/repo"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/closer"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/logger"
)

// @title H+ Sport Catalog API
// @version 2.0
// @description Product catalog for H+ Sport. v1 is read only; v2 adds filtering, sorting, paging and writes.
// @host localhost:8080
// @BasePath /
func main() {
	configDir := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	log := logger.NewSlogLogger(cfg.Log.Level, cfg.Log.Format)
	if err := run(cfg, log); err != nil {
		log.Errorf(err, "catalog API stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl := closer.NewCloser(0)
	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := cl.Close(shutdownCtx); err != nil {
			log.Errorf(err, "shutdown")
		}
	}
	defer shutdown()

	pool, dialect, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	store := repo.NewSQLStore(pool, dialect, cfg.Database.QueryTimeout)
	cl.AddFunc(store.Close)
	log.Infof("connected to %s database", dialect)

	if err := store.EnsureCreated(ctx); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}
	if cfg.Database.Seed {
		seeded, err := store.Seed(ctx)
		if err != nil {
			return fmt.Errorf("could not seed catalog: %w", err)
		}
		if seeded {
			log.Infof("seeded empty catalog with sample data")
		}
	}

	var rdb *redis.Client
	if cfg.Events.Driver == "redis" {
		redisService, err := redissvc.NewRedisService(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}
		cl.AddFunc(redisService.Close)
		rdb = redisService.Rdb()
	}

	publisher, err := events.New(cfg, rdb, log)
	if err != nil {
		return err
	}
	cl.AddFunc(publisher.Close)
	log.Infof("product events go to %q", cfg.Events.Driver)

	handlers.SetStore(store)
	handlers.SetPublisher(publisher)
	handlers.SetLogger(log)

	srv := server.NewServer(router.NewRouter(router.Options{
		Logger:  log,
		Swagger: cfg.Swagger.Enabled,
	}), cfg.HTTP)
	cl.Add(srv.Stop)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()
	log.Infof("server running on %s", srv.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Infof("shutting down")
		return nil
	}
}
