package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/auth"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/attendance"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/certificates"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses:
// NotFound 404, Conflict 409, CapacityExceeded 409 (own problem type),
// bad credentials 401, validation 400, anything else 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var eventsValidation events.ValidationError
	var membersValidation members.ValidationError
	var auditValidation audit.ValidationError

	switch {
	case errors.Is(err, members.ErrNotFound),
		errors.Is(err, events.ErrNotFound),
		errors.Is(err, registrations.ErrNotFound),
		errors.Is(err, attendance.ErrNotFound),
		errors.Is(err, certificates.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, env)
	case errors.Is(err, registrations.ErrCapacityExceeded):
		problem.Write(w, r, http.StatusConflict, problem.TypeCapacityExceeded, "Capacity exceeded", err, env)
	case errors.Is(err, registrations.ErrAlreadyRegistered),
		errors.Is(err, members.ErrEmailTaken):
		problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Conflict", err, env)
	case errors.Is(err, auth.ErrInvalidCredentials):
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Invalid credentials", err, env)
	case errors.As(err, &eventsValidation):
		writeValidationError(w, r, eventsValidation.Field, eventsValidation.Message, err, env)
	case errors.As(err, &membersValidation):
		writeValidationError(w, r, membersValidation.Field, membersValidation.Message, err, env)
	case errors.As(err, &auditValidation):
		writeValidationError(w, r, auditValidation.Field, auditValidation.Message, err, env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, env)
	}
}

// writeValidationError names the offending field in the problem body so
// clients can point at the right input.
func writeValidationError(w http.ResponseWriter, r *http.Request, field, message string, err error, env string) {
	var opts []problem.Option
	if field != "" {
		opts = append(opts, problem.WithErrors(map[string]interface{}{field: message}))
	}
	problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, env, opts...)
}
