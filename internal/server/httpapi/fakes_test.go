package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/medapp/internal/logging"
	"github.com/dmitrijs2005/medapp/internal/server/auth"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/dmitrijs2005/medapp/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var errBoom = errors.New("boom")

type fakeUsers struct {
	signupIn  *services.SignupInput
	signupOut *services.AuthResult
	signupErr error

	loginOut *services.AuthResult
	loginErr error

	profile    *models.User
	profileErr error

	edited  *models.User
	editErr error
}

func (f *fakeUsers) Signup(ctx context.Context, in services.SignupInput) (*services.AuthResult, error) {
	f.signupIn = &in
	return f.signupOut, f.signupErr
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	return f.loginOut, f.loginErr
}

func (f *fakeUsers) GetProfile(ctx context.Context, id int64) (*models.User, error) {
	return f.profile, f.profileErr
}

func (f *fakeUsers) EditProfile(ctx context.Context, u *models.User) error {
	f.edited = u
	return f.editErr
}

type fakeAppointments struct {
	createIn  *services.CreateAppointmentInput
	createOut *services.CreatedAppointment
	createErr error

	listUser int64
	list     []*models.Appointment
	listErr  error
}

func (f *fakeAppointments) Create(ctx context.Context, in services.CreateAppointmentInput) (*services.CreatedAppointment, error) {
	f.createIn = &in
	return f.createOut, f.createErr
}

func (f *fakeAppointments) ListByUser(ctx context.Context, userID int64) ([]*models.Appointment, error) {
	f.listUser = userID
	return f.list, f.listErr
}

type fakeHospitals struct {
	list    []*models.Hospital
	listErr error
	one     *models.Hospital
	oneErr  error
}

func (f *fakeHospitals) List(ctx context.Context) ([]*models.Hospital, error) {
	return f.list, f.listErr
}

func (f *fakeHospitals) Get(ctx context.Context, id int64) (*models.Hospital, error) {
	return f.one, f.oneErr
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

type testEnv struct {
	users        *fakeUsers
	appointments *fakeAppointments
	hospitals    *fakeHospitals
	handler      http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:        &fakeUsers{},
		appointments: &fakeAppointments{},
		hospitals:    &fakeHospitals{},
	}
	s := NewHTTPServer(":0", logging.Nop(), env.users, env.appointments, env.hospitals, fakePinger{}, testSecret)
	env.handler = s.Handler()
	return env
}

func (e *testEnv) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.GenerateToken(email, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}
