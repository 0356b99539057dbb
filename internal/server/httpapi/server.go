// Package httpapi exposes the REST API: auth, user profile, appointments and
// hospitals, plus health and Prometheus endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/medapp/internal/logging"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/dmitrijs2005/medapp/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetProfile(ctx context.Context, id int64) (*models.User, error)
	EditProfile(ctx context.Context, user *models.User) error
}

type AppointmentService interface {
	Create(ctx context.Context, in services.CreateAppointmentInput) (*services.CreatedAppointment, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Appointment, error)
}

type HospitalService interface {
	List(ctx context.Context) ([]*models.Hospital, error)
	Get(ctx context.Context, id int64) (*models.Hospital, error)
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	address      string
	users        UserService
	appointments AppointmentService
	hospitals    HospitalService
	db           Pinger
	logger       logging.Logger
	jwtSecret    []byte
	metrics      *metrics
}

func NewHTTPServer(a string, l logging.Logger, us UserService, as AppointmentService, hs HospitalService, db Pinger, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:      a,
		logger:       l.With("module", "http_server"),
		users:        us,
		appointments: as,
		hospitals:    hs,
		db:           db,
		jwtSecret:    []byte(secretKey),
		metrics:      newMetrics(),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
