package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/api/middleware"
	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
)

type RegistrationsHandler struct {
	Service *registrations.Service
	Env     string
}

func NewRegistrationsHandler(service *registrations.Service, env string) *RegistrationsHandler {
	return &RegistrationsHandler{Service: service, Env: env}
}

type registerRequest struct {
	MemberID string `json:"memberId"`
	EventID  string `json:"eventId"`
}

type registrationResponse struct {
	ID             string `json:"id"`
	MemberID       string `json:"memberId"`
	EventID        string `json:"eventId"`
	SequentialCode int    `json:"sequentialCode"`
	CreatedAt      string `json:"createdAt"`
}

func registrationPayload(reg registrations.Registration) registrationResponse {
	return registrationResponse{
		ID:             reg.ID,
		MemberID:       reg.MemberID,
		EventID:        reg.EventID,
		SequentialCode: reg.SequentialCode,
		CreatedAt:      reg.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *RegistrationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if err := ids.ValidateULID(req.MemberID); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if err := ids.ValidateULID(req.EventID); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	reg, err := h.Service.Register(r.Context(), req.MemberID, req.EventID, middleware.ActorID(r))
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusCreated, registrationPayload(*reg))
}

func (h *RegistrationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := ids.ValidateULID(id); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	reg, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, registrationPayload(*reg))
}

func (h *RegistrationsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(r.PathValue("id"))
	if err := ids.ValidateULID(eventID); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	list, err := h.Service.ListForEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	items := make([]registrationResponse, 0, len(list))
	for _, reg := range list {
		items = append(items, registrationPayload(reg))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
