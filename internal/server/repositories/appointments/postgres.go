// Package appointments provides PostgreSQL-backed persistence for
// appointment records.
package appointments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/dbx"
	"github.com/dmitrijs2005/medapp/internal/server/models"
)

// Foreign key constraint names as generated by PostgreSQL for the
// appointments table.
const (
	userFKConstraint     = "appointments_fk_user_fkey"
	hospitalFKConstraint = "appointments_fk_hospital_fkey"
	statusFKConstraint   = "appointments_fk_status_fkey"
)

// PostgresRepository implements appointment storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a and fills in its generated ID. A dangling user, hospital
// or status reference is reported as a common.ValidationError on the
// offending field.
func (r *PostgresRepository) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	query := `
		INSERT INTO appointments (estimated_date, fk_user, fk_hospital, description, fk_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING appointment_id
	`

	err := r.db.QueryRowContext(ctx, query,
		a.EstimatedDate, a.UserID, a.HospitalID, a.Description, a.StatusID).Scan(&a.ID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, danglingReference(dbx.ConstraintName(err))
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func danglingReference(constraint string) error {
	switch constraint {
	case userFKConstraint:
		return common.NewValidationError(common.FieldError{Field: "fk_user", Msg: "fk_user does not reference an existing user"})
	case hospitalFKConstraint:
		return common.NewValidationError(common.FieldError{Field: "fk_hospital", Msg: "fk_hospital does not reference an existing hospital"})
	case statusFKConstraint:
		return fmt.Errorf("db error: default appointment status does not exist")
	default:
		return fmt.Errorf("db error: foreign key violation on %s", constraint)
	}
}

// ListByUser returns every appointment owned by userID, oldest first.
// An empty result is not an error.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Appointment, error) {
	query := `
		SELECT appointment_id, estimated_date, fk_user, fk_hospital, description, fk_status
		FROM appointments
		WHERE fk_user = $1
		ORDER BY estimated_date, appointment_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select appointments: %w", err)
	}
	defer rows.Close()

	var result []*models.Appointment
	for rows.Next() {
		var item models.Appointment
		if err := rows.Scan(
			&item.ID, &item.EstimatedDate, &item.UserID, &item.HospitalID,
			&item.Description, &item.StatusID,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
