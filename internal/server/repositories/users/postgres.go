package users

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

// IdentityTaken reports whether any user already holds email, curp or rfc.
func (r *PostgresRepository) IdentityTaken(ctx context.Context, email, curp, rfc string) (bool, error) {
	query :=
		`SELECT 1 FROM users
		 WHERE email = $1 OR rfc = $2 OR curp = $3
		 LIMIT 1
		 `

	var one int
	err := r.db.QueryRowContext(ctx, query, email, rfc, curp).Scan(&one)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return true, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, lastname, email, curp, rfc, password, salt, fk_rol)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING user_id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Lastname, user.Email, user.CURP, user.RFC,
		user.PasswordHash, user.Salt, user.RoleID).Scan(&user.ID)

	if err != nil {
		return nil, mapWriteError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT user_id, name, lastname, email, curp, rfc, password, salt, fk_rol FROM users
		 WHERE email = $1
		 `

	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT user_id, name, lastname, email, curp, rfc, password, salt, fk_rol FROM users
		 WHERE user_id = $1
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Lastname, &user.Email, &user.CURP, &user.RFC,
		&user.PasswordHash, &user.Salt, &user.RoleID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// Update overwrites the editable profile fields of user.ID. Matching no row
// is not an error.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users SET name = $1, lastname = $2, email = $3, curp = $4, rfc = $5
		 WHERE user_id = $6
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.Lastname, user.Email, user.CURP, user.RFC, user.ID)

	if err != nil {
		return mapWriteError(err)
	}

	return nil
}

func mapWriteError(err error) error {
	if dbx.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, dbx.ConstraintName(err))
	}
	return fmt.Errorf("db error: %w", err)
}
