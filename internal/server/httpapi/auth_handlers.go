package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/server/services"
)

type signupRequest struct {
	Name     *string `json:"name" validate:"required"`
	Lastname *string `json:"lastname" validate:"required"`
	Email    *string `json:"email" validate:"required,email"`
	CURP     *string `json:"curp" validate:"required"`
	RFC      *string `json:"rfc" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// loginRequest carries no format rules beyond presence: any unusable input
// gets the same answer as wrong credentials.
type loginRequest struct {
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// authUser is the user as shown after signup or login.
type authUser struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	CURP     string `json:"curp"`
	RFC      string `json:"rfc"`
	RoleID   int64  `json:"fkRol"`
}

type authResponse struct {
	Message string   `json:"message"`
	User    authUser `json:"user"`
}

func newAuthResponse(msg string, res *services.AuthResult) authResponse {
	u := res.User
	return authResponse{
		Message: msg,
		User: authUser{
			Name:     u.Name,
			Lastname: u.Lastname,
			Email:    u.Email,
			CURP:     u.CURP,
			RFC:      u.RFC,
			RoleID:   u.RoleID,
		},
	}
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := validateRequest(&req, decodeJSON(w, r, &req)); err != nil {
		writeValidation(w, err)
		return
	}

	res, err := s.users.Signup(r.Context(), services.SignupInput{
		Name:     *req.Name,
		Lastname: *req.Lastname,
		Email:    *req.Email,
		CURP:     *req.CURP,
		RFC:      *req.RFC,
		Password: *req.Password,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeMessage(w, http.StatusBadRequest, "Email, CURP, or RFC already exists")
			return
		}
		s.logger.Error(r.Context(), "signup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error during signup")
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", res.User.ID)

	w.Header().Set(common.AuthorizationHeaderName, common.BearerPrefix+res.Token)
	writeJSON(w, http.StatusCreated, newAuthResponse("User created successfully", res))
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := validateRequest(&req, decodeJSON(w, r, &req)); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	res, err := s.users.Login(r.Context(), *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error during login")
		return
	}

	w.Header().Set(common.AuthorizationHeaderName, common.BearerPrefix+res.Token)
	writeJSON(w, http.StatusOK, newAuthResponse("User authenticated successfully", res))
}
