package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/stock-dashboard/internal/auth"
	"github.com/rogerio-castellano/stock-dashboard/internal/config"
	"github.com/rogerio-castellano/stock-dashboard/internal/db"
	"github.com/rogerio-castellano/stock-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/stock-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stock-dashboard/internal/http/router"
	"github.com/rogerio-castellano/stock-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/stock-dashboard/internal/repo"
)

// @title Stock Dashboard API
// @version 1.0
// @description REST API for managing inventory products and viewing stock analytics.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatal("❌ Could not prepare schema:", err)
	}

	productRepo := repo.NewSQLProductRepository(database)
	userRepo := repo.NewSQLUserRepository(database)
	hasher := auth.NewBcryptHasher()

	if cfg.SeedAdminPassword != "" {
		created, err := auth.EnsureAdmin(ctx, userRepo, hasher, cfg.SeedAdminPassword)
		if err != nil {
			log.Fatal("❌ Could not seed admin user:", err)
		}
		if created {
			log.Println("👤 Admin user created")
		}
	}

	gate, err := auth.NewGate(auth.GateConfig{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.TokenTTL,
		DemoBypass: auth.DemoBypass{
			Enabled: cfg.DemoBypassEnabled,
			Token:   cfg.DemoBypassToken,
		},
	})
	if err != nil {
		log.Fatal("❌ Could not build access gate:", err)
	}
	if cfg.DemoBypassEnabled {
		log.Println("⚠️ Demo bypass enabled: the guest token grants admin access")
	}

	opts := handlers.Options{
		Products: productRepo,
		Users:    userRepo,
		Auth:     auth.NewService(userRepo, hasher, gate),
		Hasher:   hasher,
		Store:    database,
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️ Redis unavailable, dashboard cache disabled: %v", err)
			rdb.Close()
		} else {
			defer rdb.Close()
			opts.Cache = redissvc.NewRedisService(rdb, cfg.DashboardCacheTTL)
			log.Println("✅ Dashboard cache connected to Redis")
		}
	}

	limiter := rl.New(cfg.LoginRatePerSec, cfg.LoginRateBurst)
	go limiter.StartCleanupLoop(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(handlers.NewServer(opts), gate, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("✅ Server running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
}
