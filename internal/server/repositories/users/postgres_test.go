package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	qIdentity = `(?s)^SELECT\s+1\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+OR\s+rfc\s*=\s*\$2\s+OR\s+curp\s*=\s*\$3\s+LIMIT\s+1\s*$`
	qInsert   = `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*lastname,\s*email,\s*curp,\s*rfc,\s*password,\s*salt,\s*fk_rol\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)\s*RETURNING\s+user_id\s*$`
	qByEmail  = `(?s)^SELECT\s+user_id,.*fk_rol\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	qByID     = `(?s)^SELECT\s+user_id,.*fk_rol\s+FROM\s+users\s+WHERE\s+user_id\s*=\s*\$1\s*$`
	qUpdate   = `(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*\$1,\s*lastname\s*=\s*\$2,\s*email\s*=\s*\$3,\s*curp\s*=\s*\$4,\s*rfc\s*=\s*\$5\s+WHERE\s+user_id\s*=\s*\$6\s*$`
)

var userColumns = []string{"user_id", "name", "lastname", "email", "curp", "rfc", "password", "salt", "fk_rol"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleUser() *models.User {
	return &models.User{
		Name: "Ana", Lastname: "López", Email: "ana@example.com",
		CURP: "LOAA900101MDFPNN09", RFC: "LOAA900101AB1",
		PasswordHash: "digest", Salt: "salt", RoleID: 1,
	}
}

func TestIdentityTaken(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		want    bool
		wantErr bool
	}{
		{
			name: "free",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(qIdentity).WithArgs("a@b.c", "RFC", "CURP").WillReturnError(sql.ErrNoRows)
			},
			want: false,
		},
		{
			name: "taken",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(qIdentity).WithArgs("a@b.c", "RFC", "CURP").
					WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
			},
			want: true,
		},
		{
			name: "db error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(qIdentity).WithArgs("a@b.c", "RFC", "CURP").WillReturnError(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()
			tt.setup(mock)

			got, err := repo.IdentityTaken(context.Background(), "a@b.c", "CURP", "RFC")
			if tt.wantErr {
				if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
					t.Fatalf("expected wrapped db error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("IdentityTaken error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUser()
	mock.ExpectQuery(qInsert).
		WithArgs(u.Name, u.Lastname, u.Email, u.CURP, u.RFC, u.PasswordHash, u.Salt, u.RoleID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(42)))

	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.Email != "ana@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_curp_key"})

	_, err := repo.Create(context.Background(), sampleUser())
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(7), "Ana", "López", "ana@example.com", "CURP", "RFC", "digest", "salt", int64(2))
	mock.ExpectQuery(qByEmail).WithArgs("ana@example.com").WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 7 || got.PasswordHash != "digest" || got.Salt != "salt" || got.RoleID != 2 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByEmail).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(3), "Ana", "López", "ana@example.com", "CURP", "RFC", "digest", "salt", int64(1))
	mock.ExpectQuery(qByID).WithArgs(int64(3)).WillReturnRows(rows)
	mock.ExpectQuery(qByID).WithArgs(int64(4)).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(qByID).WithArgs(int64(5)).WillReturnError(errors.New("db err"))

	got, err := repo.GetByID(context.Background(), 3)
	if err != nil || got.ID != 3 {
		t.Fatalf("GetByID: %+v, %v", got, err)
	}

	if _, err := repo.GetByID(context.Background(), 4); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}

	_, err = repo.GetByID(context.Background(), 5)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUser()
	u.ID = 9

	mock.ExpectExec(qUpdate).
		WithArgs(u.Name, u.Lastname, u.Email, u.CURP, u.RFC, u.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(qUpdate).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	if err := repo.Update(context.Background(), u); err != nil {
		t.Fatalf("Update with no matching row must succeed, got %v", err)
	}

	if err := repo.Update(context.Background(), u); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
