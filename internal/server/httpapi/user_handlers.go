package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/server/models"
)

type editProfileRequest struct {
	ID       *int64  `json:"id" validate:"required"`
	Name     *string `json:"name" validate:"required"`
	Lastname *string `json:"lastname" validate:"required"`
	Email    *string `json:"email" validate:"required,email"`
	CURP     *string `json:"curp" validate:"required"`
	RFC      *string `json:"rfc" validate:"required"`
}

type profileResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (s *HTTPServer) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam("id", r.URL.Query().Get("id"))
	if err != nil {
		writeValidation(w, err)
		return
	}

	user, err := s.users.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error(r.Context(), "get profile failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error during get profile")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{Message: "User found", User: user})
}

func (s *HTTPServer) handleEditProfile(w http.ResponseWriter, r *http.Request) {
	var req editProfileRequest
	if err := validateRequest(&req, decodeJSON(w, r, &req)); err != nil {
		writeValidation(w, err)
		return
	}

	err := s.users.EditProfile(r.Context(), &models.User{
		ID:       *req.ID,
		Name:     *req.Name,
		Lastname: *req.Lastname,
		Email:    *req.Email,
		CURP:     *req.CURP,
		RFC:      *req.RFC,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeMessage(w, http.StatusBadRequest, "Email, CURP, or RFC already exists")
			return
		}
		s.logger.Error(r.Context(), "edit profile failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error during profile update")
		return
	}

	writeMessage(w, http.StatusOK, "User profile updated successfully")
}
