package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/medapp/internal/dbx"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	appointmentsrepo "github.com/dmitrijs2005/medapp/internal/server/repositories/appointments"
	hospitalsrepo "github.com/dmitrijs2005/medapp/internal/server/repositories/hospitals"
	usersrepo "github.com/dmitrijs2005/medapp/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	taken    bool
	takenErr error

	created   *models.User
	createErr error

	byEmail    *models.User
	byEmailErr error

	byID    *models.User
	byIDErr error

	updated   *models.User
	updateErr error
}

func (f *fakeUsersRepo) IdentityTaken(ctx context.Context, email, curp, rfc string) (bool, error) {
	return f.taken, f.takenErr
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	f.updated = u
	return f.updateErr
}

type fakeAppointmentsRepo struct {
	created   *models.Appointment
	createErr error

	list    []*models.Appointment
	listErr error
}

func (f *fakeAppointmentsRepo) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = 77
	f.created = a
	return a, nil
}

func (f *fakeAppointmentsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Appointment, error) {
	return f.list, f.listErr
}

type fakeHospitalsRepo struct {
	list    []*models.Hospital
	listErr error

	one    *models.Hospital
	oneErr error
}

func (f *fakeHospitalsRepo) List(ctx context.Context) ([]*models.Hospital, error) {
	return f.list, f.listErr
}

func (f *fakeHospitalsRepo) GetByID(ctx context.Context, id int64) (*models.Hospital, error) {
	return f.one, f.oneErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	a *fakeAppointmentsRepo
	h *fakeHospitalsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error         { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository               { return m.u }
func (m *fakeRepoManager) Appointments(db dbx.DBTX) appointmentsrepo.Repository { return m.a }
func (m *fakeRepoManager) Hospitals(db dbx.DBTX) hospitalsrepo.Repository       { return m.h }
