package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/rogerio-castellano/stock-dashboard/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

type stubUsers map[string]models.User

func (s stubUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	u, ok := s[username]
	if !ok {
		return models.User{}, repo.ErrUserNotFound
	}
	return u, nil
}

type failingUsers struct{}

func (failingUsers) GetByUsername(context.Context, string) (models.User, error) {
	return models.User{}, errors.New("connection refused")
}

func newTestService(t *testing.T, users UserLookup) (*Service, *Gate) {
	t.Helper()
	g := newTestGate(t, &fakeClock{t: time.Now()}, DemoBypass{})
	return NewService(users, BcryptHasher{Cost: bcrypt.MinCost}, g), g
}

func TestLogin(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := hasher.Hash("admin123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	users := stubUsers{
		"admin": {ID: 1, Username: "admin", PasswordHash: hash, Role: models.RoleAdmin},
	}
	svc, gate := newTestService(t, users)

	t.Run("success", func(t *testing.T) {
		res, err := svc.Login(context.Background(), "admin", "admin123")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if res.User.ID != 1 || res.Token == "" {
			t.Fatalf("unexpected result %+v", res)
		}
		p, err := gate.Authenticate("Bearer " + res.Token)
		if err != nil {
			t.Fatalf("issued token does not authenticate: %v", err)
		}
		if p.SubjectID != "1" || p.Role != models.RoleAdmin {
			t.Errorf("unexpected principal %+v", p)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody", "admin123")
		if !errors.Is(err, ErrUnknownIdentity) {
			t.Errorf("expected ErrUnknownIdentity, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "admin", "wrong")
		if !errors.Is(err, ErrBadSecret) {
			t.Errorf("expected ErrBadSecret, got %v", err)
		}
	})
}

func TestLogin_StoreFailure(t *testing.T) {
	svc, _ := newTestService(t, failingUsers{})

	_, err := svc.Login(context.Background(), "admin", "admin123")
	if err == nil || errors.Is(err, ErrUnknownIdentity) || errors.Is(err, ErrBadSecret) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the password")
	}
	if !h.Verify(hash, "s3cret") {
		t.Error("expected password to verify")
	}
	if h.Verify(hash, "other") {
		t.Error("expected wrong password to fail")
	}
}
