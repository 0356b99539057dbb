package hospitals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/dbx"
	"github.com/dmitrijs2005/medapp/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Hospital, error) {
	query := `SELECT hospital_id, name, address, phone FROM hospitals ORDER BY hospital_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Hospital, 0)
	for rows.Next() {
		var h models.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Hospital, error) {
	query := `SELECT hospital_id, name, address, phone FROM hospitals WHERE hospital_id = $1`

	h := &models.Hospital{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.Address, &h.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return h, nil
}
