package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menuhub/dish-service/handlers"
	"github.com/menuhub/dish-service/internal/admin"
	"github.com/menuhub/dish-service/internal/config"
	"github.com/menuhub/dish-service/internal/dish/handler"
	"github.com/menuhub/dish-service/internal/dish/service"
	"github.com/menuhub/dish-service/pkg/logger"
	"github.com/menuhub/dish-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

// Deps is everything the router needs. Redis and Ready are optional.
type Deps struct {
	Config *config.Config
	Dishes *service.Service
	Gate   *admin.Gate
	Redis  *redis.Client
	// Ready reports whether the backing store is reachable; nil means always ready.
	Ready func(ctx context.Context) error
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		uptime := time.Since(startTime).String()
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				logger.Warnf("readiness check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": gin.H{"mongo": false}, "uptime": uptime})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": gin.H{"mongo": true}, "uptime": uptime})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterSwagger(r)
	handler.RegisterDishRoutes(r, d.Dishes)

	if d.Gate != nil {
		handlers.NewAdminHandler(d.Gate, cfg.Admin.CookieName, cfg.Server.IsProduction()).
			Register(r, loginLimiter(cfg.RateLimit, d.Redis))
	}
	return r
}

func loginLimiter(rl config.RateLimitConfig, client *redis.Client) gin.HandlerFunc {
	if !rl.Enabled {
		return nil
	}
	if rl.UseRedis && client != nil {
		win := time.Duration(rl.WindowSeconds) * time.Second
		return middleware.RedisRateLimitMiddleware(client, rl.RPS, rl.Burst, win, nil)
	}
	return middleware.RateLimitMiddleware(rl.RPS, rl.Burst, nil)
}

// JWTSecret returns the configured signing secret, or a random one when unset. A random
// secret invalidates every admin cookie on restart.
func JWTSecret(configured string) []byte {
	if configured != "" {
		return []byte(configured)
	}
	logger.Warn("JWT_SECRET not set; using a random per-process secret")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		logger.Fatalf("generate jwt secret: %v", err)
	}
	return b
}

// NewRedisClient connects to the configured Redis, returning nil when none is configured or
// it does not answer a ping.
func NewRedisClient(ctx context.Context, rc config.RedisConfig) *redis.Client {
	if rc.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Host + ":" + rc.Port,
		Password: rc.Password,
		DB:       rc.DB,
	})
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s:%s): %v", rc.Host, rc.Port, err)
		_ = client.Close()
		return nil
	}
	logger.Infof("connected to Redis at %s:%s", rc.Host, rc.Port)
	return client
}

// Run serves h until ctx is canceled, then shuts down within the configured timeout.
func Run(ctx context.Context, sc config.ServerConfig, h http.Handler) error {
	srv := &http.Server{
		Addr:         sc.Addr(),
		Handler:      h,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	timeout := sc.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
