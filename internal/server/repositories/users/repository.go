package users

import (
	"context"

	"github.com/dmitrijs2005/medapp/internal/server/models"
)

type Repository interface {
	IdentityTaken(ctx context.Context, email, curp, rfc string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
