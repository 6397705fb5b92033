package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alialif/JoinUp-Event-Management/internal/api/middleware"
	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
)

type MembersHandler struct {
	Service *members.Service
	Env     string
}

func NewMembersHandler(service *members.Service, env string) *MembersHandler {
	return &MembersHandler{Service: service, Env: env}
}

func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	items := make([]memberResponse, 0, len(list))
	for _, member := range list {
		items = append(items, memberPayload(member))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *MembersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, memberPayload(*member))
}

func (h *MembersHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, err := h.Service.PromoteToStaff(r.Context(), id, middleware.ActorID(r))
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, memberPayload(*member))
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *MembersHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	member, err := h.Service.ChangeRole(r.Context(), id, req.Role, middleware.ActorID(r))
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, memberPayload(*member))
}

func (h *MembersHandler) memberID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := ids.ValidateULID(id); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			members.ValidationError{Field: "id", Message: "must be a ULID"}, h.Env)
		return "", false
	}
	return id, true
}
