package main

import (
	"context"
	"errors"
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
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// initialize logging (LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if errors.Is(err, config.ErrMissingMongoURI) {
		logger.Fatalf("%v", err)
	}
	if cfg.LogLevel != "" {
		logger.Init(cfg.LogLevel)
	}
	logger.Infof("config loaded: mongo=%v redis=%v env=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Server.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	db := client.Database(cfg.MongoDB.Database)
	logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)

	svc, repo := service.NewMongoService(db.Collection("dishes"), db.Collection("counters"))
	if err := repo.Init(ctx); err != nil {
		logger.Fatalf("failed to prepare dishes collection: %v", err)
	}
	if cfg.Seed {
		seedIfEmpty(ctx, svc)
	}

	rdb := server.NewRedisClient(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}
	sessionsSvc := newSessionService(ctx, rdb, db)

	gate := admin.NewGate(
		admin.NewStaticAuthenticator(cfg.Admin.Email, cfg.Admin.Password),
		sessionsSvc,
		server.JWTSecret(cfg.JWT.Secret),
		cfg.Admin.SessionTTL,
	)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.NewRouter(server.Deps{
		Config: cfg,
		Dishes: svc,
		Gate:   gate,
		Redis:  rdb,
		Ready: func(ctx context.Context) error {
			return database.Ping(ctx, client, 2*time.Second)
		},
	})

	if err := server.Run(ctx, cfg.Server, r); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// newSessionService prefers Redis for admin sessions and falls back to a Mongo collection.
func newSessionService(ctx context.Context, rdb *redis.Client, db *mongo.Database) *sessions.Service {
	if rdb != nil {
		logger.Infof("using Redis for admin session storage")
		return sessions.NewService(sessions.NewRedisRepository(rdb, ""))
	}
	repo := sessions.NewMongoRepository(db.Collection("admin_sessions"))
	if err := repo.EnsureTTLIndex(ctx); err != nil {
		logger.Warnw("admin_sessions TTL index not created", "err", err)
	}
	logger.Infof("using MongoDB for admin session storage")
	return sessions.NewService(repo)
}

func seedIfEmpty(ctx context.Context, svc *service.Service) {
	existing, err := svc.List(ctx)
	if err != nil {
		logger.Warnw("seed skipped", "err", err)
		return
	}
	if len(existing) > 0 {
		return
	}
	n, err := svc.Seed(ctx, dish.SampleMenu())
	if err != nil {
		logger.Warnw("seed failed", "err", err)
		return
	}
	logger.Infof("seeded %d sample dishes", n)
}
