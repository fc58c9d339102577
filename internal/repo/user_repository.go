package repo

import (
	"context"

	"github.com/rogerio-castellano/stock-dashboard/internal/models"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int) error
}
