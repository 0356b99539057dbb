package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/dmitrijs2005/medapp/internal/server/services"
)

type createAppointmentRequest struct {
	UserID        *int64  `json:"fk_user" validate:"required"`
	HospitalID    *int64  `json:"fk_hospital" validate:"required"`
	EstimatedDate *string `json:"estimated_date" validate:"required"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
}

type createAppointmentResponse struct {
	AppointmentID int64  `json:"appointment_id"`
	QRCode        string `json:"qrCode"`
}

type appointmentsResponse struct {
	Appointments []*models.Appointment `json:"appointments"`
}

func (s *HTTPServer) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	decodeErrs := decodeJSON(w, r, &req)

	if req.EstimatedDate != nil {
		if _, ok := parseISODate(*req.EstimatedDate); !ok {
			decodeErrs = append(decodeErrs, common.FieldError{Field: "estimated_date", Msg: fieldMessage("estimated_date", "")})
		}
	}

	if err := validateRequest(&req, decodeErrs); err != nil {
		writeValidation(w, err)
		return
	}

	when, _ := parseISODate(*req.EstimatedDate)
	in := services.CreateAppointmentInput{
		UserID:        *req.UserID,
		HospitalID:    *req.HospitalID,
		EstimatedDate: when,
	}
	if req.Description != nil {
		in.Description = *req.Description
	}

	out, err := s.appointments.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeValidation(w, err)
			return
		}
		s.logger.Error(r.Context(), "create appointment failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error creating appointment or generating QR code")
		return
	}

	writeJSON(w, http.StatusCreated, createAppointmentResponse{
		AppointmentID: out.Appointment.ID,
		QRCode:        out.QRCode,
	})
}

func (s *HTTPServer) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam("user_id", r.URL.Query().Get("user_id"))
	if err != nil {
		writeValidation(w, err)
		return
	}

	items, err := s.appointments.ListByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "No appointments found for this user")
			return
		}
		s.logger.Error(r.Context(), "list appointments failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error retrieving appointments")
		return
	}

	writeJSON(w, http.StatusOK, appointmentsResponse{Appointments: items})
}
