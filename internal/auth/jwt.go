package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
)

// DefaultTokenTTL is how long an issued credential stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the payload of an issued credential.
type Claims struct {
	UserID int         `json:"id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type GateConfig struct {
	Secret     []byte
	TokenTTL   time.Duration
	DemoBypass DemoBypass
	// Now defaults to time.Now.
	Now func() time.Time
}

// Gate issues credentials and resolves them back into principals.
type Gate struct {
	secret []byte
	ttl    time.Duration
	bypass DemoBypass
	now    func() time.Time
}

func NewGate(cfg GateConfig) (*Gate, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("auth: signing secret is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Gate{
		secret: cfg.Secret,
		ttl:    ttl,
		bypass: cfg.DemoBypass,
		now:    now,
	}, nil
}

// Issue signs a credential for the user.
func (g *Gate) Issue(user models.User) (string, error) {
	issuedAt := g.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(g.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (g *Gate) verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
