package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/server/auth"
	"github.com/google/uuid"
)

// statusRecorder captures the status code written by the next handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessGate admits only requests carrying a valid bearer token and stores
// the token's subject in the request context.
func (s *HTTPServer) accessGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			writeMessage(w, http.StatusUnauthorized, "Authentication token is missing")
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Invalid authentication token")
			return
		}

		email, err := auth.GetSubjectFromToken(token, s.jwtSecret)
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			writeMessage(w, http.StatusUnauthorized, "Invalid authentication token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSubject(r.Context(), email)))
	})
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	return token, token != ""
}

const unknownRoute = "unknown"

// routeSlot receives the matched route template from inside the router so
// the access log, which wraps the router, can report it.
type routeSlot struct {
	template string
}

type routeSlotKey struct{}

// requestLogger tags each request with an id (reusing the caller's
// X-Request-ID when present) and writes one access log line.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)

		slot := &routeSlot{template: unknownRoute}
		r = r.WithContext(context.WithValue(r.Context(), routeSlotKey{}, slot))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"request_id", id,
			"method", r.Method,
			"route", slot.template,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// recoverer turns a handler panic into a 500.
func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				s.logger.Error(r.Context(), "panic in handler", "panic", p, "path", r.URL.Path)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
