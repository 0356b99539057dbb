package httpapi

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages holds the client-facing message for each field.
var fieldMessages = map[string]string{
	"id":             "id must be an integer",
	"user_id":        "user_id must be an integer",
	"fk_user":        "fk_user must be an integer",
	"fk_hospital":    "fk_hospital must be an integer",
	"name":           "name must be a string",
	"lastname":       "lastname must be a string",
	"email":          "Invalid email format",
	"curp":           "CURP must be a string",
	"rfc":            "RFC must be a string",
	"password":       "password must be a string",
	"estimated_date": "estimated_date must be a valid ISO 8601 date",
	"description":    "description must be a string",
}

func fieldMessage(field, tag string) string {
	if field == "description" && tag == "max" {
		return "description must be at most 500 characters"
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return field + " is invalid"
}

// validateRequest runs struct validation on req and merges the result with
// errors found while decoding. Each field is reported at most once, decoding
// errors first.
func validateRequest(req any, decodeErrs []common.FieldError) error {
	fields := append([]common.FieldError(nil), decodeErrs...)
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[f.Field] = true
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if seen[fe.Field()] {
				continue
			}
			seen[fe.Field()] = true
			fields = append(fields, common.FieldError{Field: fe.Field(), Msg: fieldMessage(fe.Field(), fe.Tag())})
		}
	}

	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

// parseIDParam parses a positive integer identifier.
func parseIDParam(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError(common.FieldError{Field: name, Msg: fieldMessage(name, "")})
	}
	return id, nil
}

// isoLayouts are the accepted ISO 8601 forms, most specific first. Values
// without a zone are taken as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISODate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
