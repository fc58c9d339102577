package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/rogerio-castellano/stock-dashboard/internal/auth"
	handler "github.com/rogerio-castellano/stock-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/stock-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stock-dashboard/internal/http/router"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/rogerio-castellano/stock-dashboard/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret    = "test-secret"
	adminPassword = "secret123"
	guestToken    = "guest_token"
)

var (
	adminToken    string
	employeeToken string
	productRepo   *repo.InMemoryProductRepository
	userRepo      *repo.InMemoryUserRepository
	cache         *memoryCache
	hasher        = auth.BcryptHasher{Cost: bcrypt.MinCost}
)

func init() {
	setupTestRepos(adminPassword)
	r := newRouter(true)

	var err error
	adminToken, err = generateToken(r, "admin", adminPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}

	if w := register(r, "employee", "employee123"); w.Code != http.StatusCreated {
		panic(fmt.Sprintf("error registering employee: %d %s", w.Code, w.Body.String()))
	}
	employeeToken, err = generateToken(r, "employee", "employee123")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	userRepo = repo.NewInMemoryUserRepository()
	cache = &memoryCache{}

	hash, _ := hasher.Hash(password)
	userRepo.CreateUser(context.Background(), models.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
}

// newRouter builds the full HTTP stack over the shared in-memory repos.
func newRouter(demoBypass bool) http.Handler {
	return newRouterWithLimiter(demoBypass, rl.New(1000, 1000))
}

func newRouterWithLimiter(demoBypass bool, limiter *rl.Limiter) http.Handler {
	return newRouterWith(productRepo, userRepo, cache, limiter, demoBypass)
}

// newRouterWith builds the HTTP stack over caller-supplied repos, for tests
// that need isolated state or instrumented storage.
func newRouterWith(products repo.ProductRepository, users repo.UserRepository, c handler.DashboardCache, limiter *rl.Limiter, demoBypass bool) http.Handler {
	gate, err := auth.NewGate(auth.GateConfig{
		Secret:     []byte(testSecret),
		DemoBypass: auth.DemoBypass{Enabled: demoBypass, Token: guestToken},
	})
	if err != nil {
		panic(err)
	}

	s := handler.NewServer(handler.Options{
		Products: products,
		Users:    users,
		Auth:     auth.NewService(users, hasher, gate),
		Hasher:   hasher,
		Cache:    c,
	})
	return router.NewRouter(s, gate, limiter)
}

func clearAllProducts() {
	productRepo.Clear()
	cache.InvalidateDashboard(context.Background())
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := login(r, username, password)
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.AccessToken, nil
}

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/auth/login", "", handler.CredentialsRequest{Username: username, Password: password})
}

func register(r http.Handler, username, password string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/auth/register", "", handler.CredentialsRequest{Username: username, Password: password})
}

// productPayload is what a browser client sends: plain JSON numbers.
type productPayload struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	MinStock *int    `json:"minStock,omitempty"`
}

func intPtr(v int) *int {
	return &v
}

func createProduct(r http.Handler, p productPayload) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/products", adminToken, p)
}

func mustCreateProduct(r http.Handler, p productPayload) handler.ProductResponse {
	w := createProduct(r, p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("failed to create %s: %d %s", p.Name, w.Code, w.Body.String()))
	}
	var created handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		panic(err)
	}
	return created
}

func doJSON(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

func decodeMessage(w *httptest.ResponseRecorder) string {
	var resp handler.MessageResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp.Message
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

// memoryCache is an in-process stand-in for the Redis dashboard cache.
type memoryCache struct {
	mu         sync.Mutex
	generation int64
	payloads   map[int64][]byte
	hits       int
}

func (c *memoryCache) CachedDashboard(context.Context) ([]byte, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.payloads[c.generation]
	if !ok {
		return nil, c.generation, false, nil
	}
	c.hits++
	return payload, c.generation, true, nil
}

func (c *memoryCache) StoreDashboard(_ context.Context, generation int64, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payloads == nil {
		c.payloads = make(map[int64][]byte)
	}
	c.payloads[generation] = payload
	return nil
}

func (c *memoryCache) InvalidateDashboard(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return nil
}

func (c *memoryCache) cached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.payloads[c.generation]
	return ok
}
