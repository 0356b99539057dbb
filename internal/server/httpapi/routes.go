package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler builds the full HTTP handler tree.
func (s *HTTPServer) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.metricsMiddleware)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	authAPI := api.PathPrefix("/auth").Subrouter()
	authAPI.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	authAPI.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	hospitalAPI := api.PathPrefix("/hospital").Subrouter()
	hospitalAPI.HandleFunc("", s.handleListHospitals).Methods(http.MethodGet)
	hospitalAPI.HandleFunc("/{id}", s.handleGetHospital).Methods(http.MethodGet)

	userAPI := api.PathPrefix("/user").Subrouter()
	userAPI.Use(s.accessGate)
	userAPI.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	userAPI.HandleFunc("/editProfile", s.handleEditProfile).Methods(http.MethodPut)

	appointmentAPI := api.PathPrefix("/appointments").Subrouter()
	appointmentAPI.Use(s.accessGate)
	appointmentAPI.HandleFunc("/generate", s.handleCreateAppointment).Methods(http.MethodPost)
	appointmentAPI.HandleFunc("/by-user", s.handleListAppointments).Methods(http.MethodGet)

	return s.requestLogger(s.recoverer(router))
}
