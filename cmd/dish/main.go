package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/menuhub/dish-service/internal/admin"
	"github.com/menuhub/dish-service/internal/config"
	"github.com/menuhub/dish-service/internal/database"
	"github.com/menuhub/dish-service/internal/dish"
	"github.com/menuhub/dish-service/internal/dish/service"
	"github.com/menuhub/dish-service/internal/server"
	"github.com/menuhub/dish-service/internal/sessions"
	"github.com/menuhub/dish-service/pkg/logger"
	"github.com/menuhub/dish-service/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg := config.LoadOptional()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prefer Mongo when a URI is set; fall back to memory on failure.
	var (
		svc   *service.Service
		ready func(context.Context) error
	)
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnw("cannot connect to MongoDB, using memory-backed repo", "err", err)
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			db := client.Database(cfg.MongoDB.Database)
			mongoSvc, repo := service.NewMongoService(db.Collection("dishes"), db.Collection("counters"))
			if err := repo.Init(ctx); err != nil {
				logger.Warnw("cannot prepare dishes collection, using memory-backed repo", "err", err)
			} else {
				svc = mongoSvc
				ready = func(ctx context.Context) error { return database.Ping(ctx, client, 2*time.Second) }
			}
		}
	}
	if svc == nil {
		svc, _ = service.NewMemoryService()
		if cfg.Seed {
			n, err := svc.Seed(ctx, dish.SampleMenu())
			if err != nil {
				logger.Warnw("seed failed", "err", err)
			} else {
				logger.Infof("seeded %d sample dishes", n)
			}
		}
	}

	gate := admin.NewGate(
		admin.NewStaticAuthenticator(cfg.Admin.Email, cfg.Admin.Password),
		sessions.NewService(sessions.NewMemoryRepository()),
		server.JWTSecret(cfg.JWT.Secret),
		cfg.Admin.SessionTTL,
	)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.NewRouter(server.Deps{Config: cfg, Dishes: svc, Gate: gate, Ready: ready})

	logger.Infof("dish service starting on %s", cfg.Server.Addr())
	if err := server.Run(ctx, cfg.Server, r); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
