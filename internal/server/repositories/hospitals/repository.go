package hospitals

import (
	"context"

	"github.com/dmitrijs2005/medapp/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Hospital, error)
	GetByID(ctx context.Context, id int64) (*models.Hospital, error)
}
