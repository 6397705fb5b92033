package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/audit"
)

type AuditHandler struct {
	Service *audit.Service
	Env     string
}

func NewAuditHandler(service *audit.Service, env string) *AuditHandler {
	return &AuditHandler{Service: service, Env: env}
}

type auditEntryResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actorId,omitempty"`
	Action     string `json:"action"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	CreatedAt  string `json:"createdAt"`
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := audit.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeDomainError(w, r, audit.ValidationError{Field: "limit", Message: "must be a positive integer"}, h.Env)
			return
		}
		limit = parsed
	}

	entries, err := h.Service.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	items := make([]auditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, auditEntryResponse{
			ID:         entry.ID,
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			CreatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
