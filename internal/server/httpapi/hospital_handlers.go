package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/gorilla/mux"
)

type hospitalsResponse struct {
	Hospitals []*models.Hospital `json:"hospitals"`
}

type hospitalResponse struct {
	Hospital *models.Hospital `json:"hospital"`
}

func (s *HTTPServer) handleListHospitals(w http.ResponseWriter, r *http.Request) {
	items, err := s.hospitals.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "list hospitals failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error retrieving hospitals")
		return
	}

	writeJSON(w, http.StatusOK, hospitalsResponse{Hospitals: items})
}

func (s *HTTPServer) handleGetHospital(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam("id", mux.Vars(r)["id"])
	if err != nil {
		writeValidation(w, err)
		return
	}

	h, err := s.hospitals.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Hospital not found")
			return
		}
		s.logger.Error(r.Context(), "get hospital failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error retrieving hospital")
		return
	}

	writeJSON(w, http.StatusOK, hospitalResponse{Hospital: h})
}
