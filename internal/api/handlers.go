// Package api exposes HTTP handlers for the exercise log service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"example.com/exerciselog/internal/domain"
	"example.com/exerciselog/internal/validate"
)

// logDateLayout renders dates as weekday, month, day and year.
const logDateLayout = "Mon Jan 02 2006"

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.createUser)
		r.Get("/", h.listUsers)
		r.Post("/{id}/exercises", h.createExercise)
		r.Get("/{id}/logs", h.listLogs)
	})
	r.Get("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// CreateUserRequest is the payload for POST /api/users. Username stays
// untyped so a non-string value reports a validation failure instead of a
// decoder error.
type CreateUserRequest struct {
	Username any `json:"username"`
}

// UserView projects a user to the wire format.
type UserView struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	username, err := validate.NonEmptyString(req.Username)
	if err != nil {
		writeError(w, http.StatusBadRequest, "username is required and must be a non-empty string")
		return
	}

	user, err := h.service.CreateUser(r.Context(), username)
	if err != nil {
		slog.Error("create user failed", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("could not create user %q", username))
		return
	}

	writeJSON(w, http.StatusOK, toUserView(*user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list users")
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	writeJSON(w, http.StatusOK, views)
}

// CreateExerciseRequest is the payload for POST /api/users/{id}/exercises.
// Fields stay untyped for the same reason as CreateUserRequest; duration in
// particular arrives as either a number or a numeric string.
type CreateExerciseRequest struct {
	Description any `json:"description"`
	Duration    any `json:"duration"`
	Date        any `json:"date"`
}

// ExerciseView is the response body for a created exercise.
type ExerciseView struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"id"`
}

func (h *Handler) createExercise(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.ObjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	description, err := validate.NonEmptyString(req.Description)
	if err != nil {
		writeError(w, http.StatusBadRequest, "description is required and must be a non-empty string")
		return
	}

	duration, err := validate.Duration(req.Duration)
	if err != nil {
		writeError(w, http.StatusBadRequest, "duration must be a positive integer")
		return
	}

	input := domain.CreateExerciseInput{Description: description, DurationMin: duration}
	if !absent(req.Date) {
		date, err := validate.Date(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format")
			return
		}
		input.Date = &date
	}

	user, exercise, err := h.service.CreateExercise(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("create exercise failed", "user_id", userID.Hex(), "error", err)
		writeError(w, http.StatusInternalServerError, "could not save exercise")
		return
	}

	writeJSON(w, http.StatusOK, ExerciseView{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.DurationMin,
		Date:        exercise.Date.UTC().Format(logDateLayout),
		ID:          exercise.ID.Hex(),
	})
}

// LogEntry is one formatted exercise in a log response. No identifier field
// is included.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogView packages a user's filtered exercise log.
type LogView struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"id"`
	Log      []LogEntry `json:"log"`
}

func (h *Handler) listLogs(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.ObjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	query := r.URL.Query()
	filter, err := validate.LogFilter(query.Get("from"), query.Get("to"), query.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, filterMessage(err))
		return
	}

	user, logs, err := h.service.ListLogs(r.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrNoLogEntries):
			writeError(w, http.StatusNotFound, "no matching records")
		default:
			slog.Error("list logs failed", "user_id", userID.Hex(), "error", err)
			writeError(w, http.StatusInternalServerError, "could not query logs")
		}
		return
	}

	entries := make([]LogEntry, 0, len(logs))
	for _, exercise := range logs {
		entries = append(entries, toLogEntry(exercise))
	}

	writeJSON(w, http.StatusOK, LogView{
		Username: user.Username,
		Count:    len(entries),
		ID:       user.ID.Hex(),
		Log:      entries,
	})
}

// filterMessage maps filter parse failures to client-facing reasons.
func filterMessage(err error) string {
	switch {
	case errors.Is(err, validate.ErrInvalidLimit):
		return "limit must be an integer"
	case errors.Is(err, validate.ErrLimitExceeded):
		return fmt.Sprintf("limit cannot exceed %d", validate.MaxLimit)
	case errors.Is(err, validate.ErrFromAfterTo):
		return "from date must not be after to date"
	default:
		return "invalid date format"
	}
}

// absent reports whether an optional body field was omitted or left blank.
func absent(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func toUserView(user domain.User) UserView {
	return UserView{Username: user.Username, ID: user.ID.Hex()}
}

// toLogEntry renders a stored exercise for the log response. The date is
// always stringified at this boundary; no derived rendering is persisted.
func toLogEntry(exercise domain.Exercise) LogEntry {
	return LogEntry{
		Description: exercise.Description,
		Duration:    exercise.DurationMin,
		Date:        exercise.Date.UTC().Format(logDateLayout),
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}
