package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Error types returned in the error envelope.
const (
	ErrTypeValidation = "validation_error"
	ErrTypeNotFound   = "not_found"
	ErrTypeInternal   = "internal_error"
)

// EngineError is the structured error envelope for all API failures.
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func (e EngineError) Error() string {
	return e.Type + ": " + e.Message
}

func newEngineError(r *http.Request, errType, message string) EngineError {
	return EngineError{
		Type:      errType,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// recoverer converts panics into structured 500 responses instead of
// dropping the connection.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				s.writeJSON(w, http.StatusInternalServerError,
					newEngineError(r, ErrTypeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
