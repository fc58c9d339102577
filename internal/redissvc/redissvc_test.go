package redissvc

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestDashboardCache_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	svc := NewRedisService(client, time.Minute)
	svc.InvalidateDashboard(ctx)

	_, gen, ok, err := svc.CachedDashboard(ctx)
	if err != nil || ok {
		t.Fatalf("expected cache miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"totalProducts":3}`)
	if err := svc.StoreDashboard(ctx, gen, payload); err != nil {
		t.Fatalf("StoreDashboard: %v", err)
	}

	got, _, ok, err := svc.CachedDashboard(ctx)
	if err != nil || !ok {
		t.Fatalf("expected cache hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Errorf("expected %s, got %s", payload, got)
	}

	ttl := client.TTL(ctx, summaryKey(gen)).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected ttl %v", ttl)
	}

	if err := svc.InvalidateDashboard(ctx); err != nil {
		t.Fatalf("InvalidateDashboard: %v", err)
	}
	if _, _, ok, _ := svc.CachedDashboard(ctx); ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestDashboardCache_StaleGenerationIsNeverServed(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	svc := NewRedisService(client, time.Minute)

	_, staleGen, _, err := svc.CachedDashboard(ctx)
	if err != nil {
		t.Fatalf("CachedDashboard: %v", err)
	}

	// A mutation lands while the summary for staleGen is being computed.
	if err := svc.InvalidateDashboard(ctx); err != nil {
		t.Fatalf("InvalidateDashboard: %v", err)
	}
	if err := svc.StoreDashboard(ctx, staleGen, []byte(`{"totalProducts":0}`)); err != nil {
		t.Fatalf("StoreDashboard: %v", err)
	}

	if _, gen, ok, _ := svc.CachedDashboard(ctx); ok || gen == staleGen {
		t.Errorf("expected a miss on a newer generation, got ok=%v gen=%d (stale %d)", ok, gen, staleGen)
	}
}

func TestNewRedisService_DefaultTTL(t *testing.T) {
	svc := NewRedisService(nil, 0)
	if svc.ttl != DefaultDashboardTTL {
		t.Errorf("expected default ttl, got %v", svc.ttl)
	}
}
