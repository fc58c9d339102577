package redissvc

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardKey           = "dashboard:summary"
	dashboardGenerationKey = "dashboard:gen"
)

// DefaultDashboardTTL bounds how stale a cached dashboard can get when a
// mutation bypasses this service.
const DefaultDashboardTTL = 30 * time.Second

// RedisService caches rendered dashboard summaries. Every invalidation bumps
// a generation counter and payloads are stored per generation, so a summary
// computed before an invalidation can never be served after it.
type RedisService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisService(rdb *redis.Client, ttl time.Duration) *RedisService {
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &RedisService{
		rdb: rdb,
		ttl: ttl,
	}
}

func summaryKey(generation int64) string {
	return dashboardKey + ":" + strconv.FormatInt(generation, 10)
}

func (s *RedisService) generation(ctx context.Context) (int64, error) {
	gen, err := s.rdb.Get(ctx, dashboardGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// CachedDashboard returns the payload of the current generation, whether it
// was present, and the generation a freshly computed payload must be stored
// under.
func (s *RedisService) CachedDashboard(ctx context.Context) ([]byte, int64, bool, error) {
	gen, err := s.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := s.rdb.Get(ctx, summaryKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	return data, gen, true, nil
}

func (s *RedisService) StoreDashboard(ctx context.Context, generation int64, payload []byte) error {
	return s.rdb.Set(ctx, summaryKey(generation), payload, s.ttl).Err()
}

func (s *RedisService) InvalidateDashboard(ctx context.Context) error {
	return s.rdb.Incr(ctx, dashboardGenerationKey).Err()
}
