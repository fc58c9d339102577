package handlers

import (
	"context"
	"log"
	"time"

	"github.com/rogerio-castellano/stock-dashboard/internal/auth"
	repo "github.com/rogerio-castellano/stock-dashboard/internal/repo"
)

// DashboardCache stores the encoded dashboard between product mutations.
// Payloads are keyed by generation: InvalidateDashboard starts a new one, and
// a payload stored under an older generation is never returned.
type DashboardCache interface {
	CachedDashboard(ctx context.Context) (payload []byte, generation int64, ok bool, err error)
	StoreDashboard(ctx context.Context, generation int64, payload []byte) error
	InvalidateDashboard(ctx context.Context) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Products repo.ProductRepository
	Users    repo.UserRepository
	Auth     *auth.Service
	Hasher   auth.PasswordHasher
	// Cache and Store are optional.
	Cache DashboardCache
	Store Pinger
}

// Server holds the dependencies shared by every handler.
type Server struct {
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	authService *auth.Service
	hasher      auth.PasswordHasher
	cache       DashboardCache
	store       Pinger
	now         func() time.Time
}

func NewServer(opts Options) *Server {
	hasher := opts.Hasher
	if hasher == nil {
		hasher = auth.NewBcryptHasher()
	}
	return &Server{
		productRepo: opts.Products,
		userRepo:    opts.Users,
		authService: opts.Auth,
		hasher:      hasher,
		cache:       opts.Cache,
		store:       opts.Store,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Server) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		log.Printf("failed to invalidate dashboard cache: %v", err)
	}
}
