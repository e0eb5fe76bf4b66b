package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
	"github.com/ivannizarr/chill-app-adv-be/internal/store"
	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

// Notifier queues transactional email. Delivery is best-effort and must
// never fail a request.
type Notifier interface {
	SendWelcome(user *domain.User)
	SendVerification(user *domain.User)
}

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	users        store.UserStore
	movies       store.MovieStore
	logger       *slog.Logger
	validator    *validator.Validate
	tokenManager auth.TokenManager
	notifier     Notifier
	uploadDir    string
}

func NewHandler(
	users store.UserStore,
	movies store.MovieStore,
	logger *slog.Logger,
	v *validator.Validate,
	tokenManager auth.TokenManager,
	notifier Notifier,
	uploadDir string,
) *Handler {
	return &Handler{
		users:        users,
		movies:       movies,
		logger:       logger,
		validator:    v,
		tokenManager: tokenManager,
		notifier:     notifier,
		uploadDir:    uploadDir,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to encode JSON response",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, Response{Success: false, Message: message})
}

func (h *Handler) respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	h.respondJSON(w, r, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors(err),
	})
}

// APIIndex describes the API surface, mirroring what the service has always
// served at its root.
func (h *Handler) APIIndex(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Chill Movie API",
		Data: map[string]interface{}{
			"version": "1.0.0",
			"endpoints": map[string]interface{}{
				"auth": map[string]string{
					"POST /api/auth/register":    "Register a new user",
					"POST /api/auth/login":       "Log in",
					"GET /api/auth/profile":      "View profile (token required)",
					"PATCH /api/auth/profile":    "Update profile (token required)",
					"GET /api/auth/verify-email": "Verify email address",
				},
				"movies": map[string]string{
					"GET /api/movies":        "List movies (filter, sort, search; token required)",
					"GET /api/movie/{id}":    "Get a movie by ID",
					"POST /api/movie":        "Add a movie (admin token required)",
					"PATCH /api/movie/{id}":  "Update a movie (admin token required)",
					"DELETE /api/movie/{id}": "Delete a movie (admin token required)",
				},
				"upload": map[string]string{
					"POST /api/upload":                   "Upload a profile image (token required)",
					"POST /api/upload/movie-image":       "Upload a movie image (admin token required)",
					"DELETE /api/upload/file/{filename}": "Delete an uploaded file (admin token required)",
				},
			},
		},
	})
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, r, http.StatusNotFound, "Route not found")
}

// Recover converts handler panics into a generic 500 envelope.
func (h *Handler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				h.logger.ErrorContext(r.Context(), "Panic in handler",
					slog.Any("panic", rvr),
					slog.String("path", r.URL.Path))
				h.respondJSON(w, r, http.StatusInternalServerError, Response{
					Success: false,
					Message: "Internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
