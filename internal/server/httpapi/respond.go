package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/medapp/internal/common"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Errors []common.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeValidation(w http.ResponseWriter, err error) {
	var verr *common.ValidationError
	if !errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: []common.FieldError{}})
		return
	}
	writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr.Fields})
}

// decodeJSON reads the request body into dst. Mistyped fields are reported
// as field errors; dst still receives every well-typed field.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) []common.FieldError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return []common.FieldError{{Field: typeErr.Field, Msg: fieldMessage(typeErr.Field, "")}}
	case errors.Is(err, io.EOF):
		return nil
	default:
		return []common.FieldError{{Field: "body", Msg: "request body must be a JSON object"}}
	}
}
