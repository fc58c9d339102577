package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rogerio-castellano/stock-dashboard/internal/db"
	"github.com/spf13/viper"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Port              string
	DatabaseDriver    string
	DatabaseURL       string
	RedisAddr         string
	DashboardCacheTTL time.Duration
	JWTSecret         string
	TokenTTL          time.Duration
	DemoBypassEnabled bool
	DemoBypassToken   string
	LoginRatePerSec   float64
	LoginRateBurst    int
	SeedAdminPassword string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", db.DriverSQLite)
	v.SetDefault("DATABASE_URL", "inventory.sqlite")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("DASHBOARD_CACHE_TTL", 30*time.Second)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("DEMO_BYPASS_ENABLED", false)
	v.SetDefault("DEMO_BYPASS_TOKEN", "guest_token")
	v.SetDefault("LOGIN_RATE_PER_SEC", 1.0)
	v.SetDefault("LOGIN_RATE_BURST", 3)
	v.SetDefault("SEED_ADMIN_PASSWORD", "")
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ Could not load env file: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:              v.GetString("PORT"),
		DatabaseDriver:    v.GetString("DATABASE_DRIVER"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		DashboardCacheTTL: v.GetDuration("DASHBOARD_CACHE_TTL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          v.GetDuration("TOKEN_TTL"),
		DemoBypassEnabled: v.GetBool("DEMO_BYPASS_ENABLED"),
		DemoBypassToken:   v.GetString("DEMO_BYPASS_TOKEN"),
		LoginRatePerSec:   v.GetFloat64("LOGIN_RATE_PER_SEC"),
		LoginRateBurst:    v.GetInt("LOGIN_RATE_BURST"),
		SeedAdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}
	if !db.SupportedDriver(cfg.DatabaseDriver) {
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.DemoBypassEnabled && cfg.DemoBypassToken == "" {
		return Config{}, errors.New("DEMO_BYPASS_TOKEN must be set when the demo bypass is enabled")
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
