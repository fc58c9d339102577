package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/stock-dashboard/internal/models"
)

const bearerPrefix = "Bearer "

// Authenticate resolves the raw Authorization header into a principal.
func (g *Gate) Authenticate(header string) (Principal, error) {
	if header == "" {
		return Principal{}, ErrMissingCredential
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return Principal{}, fmt.Errorf("%w: expected bearer scheme", ErrInvalidCredential)
	}

	if g.bypass.matches(token) {
		return guestPrincipal(), nil
	}

	claims, err := g.verify(token)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	return Principal{
		SubjectID: strconv.Itoa(claims.UserID),
		Role:      claims.Role,
		Source:    SourceCredential,
	}, nil
}

// Authorize checks the principal holds exactly the required role.
func Authorize(p Principal, required models.Role) error {
	if p.Role != required {
		return ErrInsufficientPrivilege
	}
	return nil
}
