package appointments

import (
	"context"

	"github.com/dmitrijs2005/medapp/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Appointment, error)
}
