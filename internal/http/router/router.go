package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/stock-dashboard/internal/http/handlers"
	mw "github.com/rogerio-castellano/stock-dashboard/internal/http/middleware"
	rl "github.com/rogerio-castellano/stock-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
)

// NewRouter wires every route. Reads are public; mutations go through
// the gate and admin-only routes additionally require the admin role.
func NewRouter(s *handlers.Server, gate mw.Authenticator, limiter *rl.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authenticated := mw.Authenticate(gate)
	adminOnly := mw.RequireRole(models.RoleAdmin)

	r.Get("/health", s.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if limiter != nil {
				r.Use(mw.RateLimit(limiter))
			}
			r.Post("/register", s.RegisterHandler)
			r.Post("/login", s.LoginHandler)
		})

		r.Get("/dashboard", s.GetDashboardHandler)
		r.Get("/export", s.ExportProductsHandler)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.GetProductsHandler)
			r.Get("/{id}", s.GetProductByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", s.CreateProductHandler)
				r.Post("/import", s.ImportProductsHandler)
				r.Put("/{id}", s.UpdateProductHandler)
				r.With(adminOnly).Delete("/{id}", s.DeleteProductHandler)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Get("/", s.GetUsersHandler)
			r.Post("/", s.CreateUserHandler)
			r.Delete("/{id}", s.DeleteUserHandler)
		})
	})

	return r
}
