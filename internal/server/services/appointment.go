package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/dbx"
	"github.com/dmitrijs2005/medapp/internal/logging"
	"github.com/dmitrijs2005/medapp/internal/server/config"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/dmitrijs2005/medapp/internal/server/qrcode"
	"github.com/dmitrijs2005/medapp/internal/server/repositories/repomanager"
)

// archiveTimeout bounds the post-commit archive call.
const archiveTimeout = 5 * time.Second

// Archiver stores a copy of an appointment's rendered code and returns the
// storage key.
type Archiver interface {
	Archive(ctx context.Context, appointmentID int64, png []byte) (string, error)
}

// CreateAppointmentInput is the data needed to book an appointment.
type CreateAppointmentInput struct {
	UserID        int64
	HospitalID    int64
	EstimatedDate time.Time
	Description   string
}

// CreatedAppointment is a stored appointment and its QR code as a data URL.
type CreatedAppointment struct {
	Appointment *models.Appointment
	QRCode      string
}

// qrPayload is what the QR code encodes.
type qrPayload struct {
	AppointmentID int64  `json:"appointment_id"`
	EstimatedDate string `json:"estimated_date"`
	UserID        int64  `json:"fk_user"`
	HospitalID    int64  `json:"fk_hospital"`
	Description   string `json:"description"`
}

type AppointmentService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	defaultStatus  int64
	render         func(payload any) (*qrcode.Code, error)
	archiver       Archiver
	archiveTimeout time.Duration
	logger         logging.Logger
}

// NewAppointmentService wires the service. archiver may be nil, which turns
// archiving off.
func NewAppointmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, archiver Archiver, logger logging.Logger) *AppointmentService {
	return &AppointmentService{
		db:             db,
		repomanager:    m,
		defaultStatus:  cfg.DefaultAppointmentStatus,
		render:         qrcode.Render,
		archiver:       archiver,
		archiveTimeout: archiveTimeout,
		logger:         logger.With("module", "appointments"),
	}
}

// Create stores the appointment and renders its QR code in one transaction:
// if rendering fails the row is rolled back. Archiving the image happens
// after commit and never fails the call.
func (s *AppointmentService) Create(ctx context.Context, in CreateAppointmentInput) (*CreatedAppointment, error) {
	a := &models.Appointment{
		EstimatedDate: in.EstimatedDate,
		UserID:        in.UserID,
		HospitalID:    in.HospitalID,
		Description:   in.Description,
	}
	if s.defaultStatus != 0 {
		status := s.defaultStatus
		a.StatusID = &status
	}

	var (
		created *models.Appointment
		code    *qrcode.Code
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Appointments(tx).Create(ctx, a)
		if err != nil {
			return err
		}

		code, err = s.render(qrPayload{
			AppointmentID: created.ID,
			EstimatedDate: created.EstimatedDate.Format(time.RFC3339),
			UserID:        created.UserID,
			HospitalID:    created.HospitalID,
			Description:   created.Description,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create appointment: %w", common.ErrorInternal, err)
	}

	s.archive(ctx, created.ID, code.PNG)

	s.logger.Info(ctx, "appointment created", "appointment_id", created.ID, "fk_user", created.UserID, "fk_hospital", created.HospitalID)

	return &CreatedAppointment{Appointment: created, QRCode: code.DataURL}, nil
}

func (s *AppointmentService) archive(ctx context.Context, id int64, png []byte) {
	if s.archiver == nil {
		return
	}

	// The row is committed; a client hanging up must not abort the upload.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.archiveTimeout)
	defer cancel()

	key, err := s.archiver.Archive(ctx, id, png)
	if err != nil {
		s.logger.Warn(ctx, "qr archive failed", "appointment_id", id, "error", err)
		return
	}
	s.logger.Debug(ctx, "qr archived", "appointment_id", id, "key", key)
}

// ListByUser returns the user's appointments, or common.ErrorNotFound when
// there are none.
func (s *AppointmentService) ListByUser(ctx context.Context, userID int64) ([]*models.Appointment, error) {
	items, err := s.repomanager.Appointments(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list appointments: %v", common.ErrorInternal, err)
	}
	if len(items) == 0 {
		return nil, common.ErrorNotFound
	}
	return items, nil
}
