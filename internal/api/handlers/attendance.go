package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/api/middleware"
	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/attendance"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
)

type AttendanceHandler struct {
	Service *attendance.Service
	Env     string
}

func NewAttendanceHandler(service *attendance.Service, env string) *AttendanceHandler {
	return &AttendanceHandler{Service: service, Env: env}
}

type markAttendanceRequest struct {
	MemberID string `json:"memberId"`
	EventID  string `json:"eventId"`
}

type attendanceResponse struct {
	ID         string `json:"id"`
	MemberID   string `json:"memberId"`
	EventID    string `json:"eventId"`
	AttendedAt string `json:"attendedAt"`
}

func attendancePayload(record attendance.Attendance) attendanceResponse {
	return attendanceResponse{
		ID:         record.ID,
		MemberID:   record.MemberID,
		EventID:    record.EventID,
		AttendedAt: record.AttendedAt.UTC().Format(time.RFC3339),
	}
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
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

	record, err := h.Service.Mark(r.Context(), req.MemberID, req.EventID, middleware.ActorID(r))
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, attendancePayload(*record))
}

func (h *AttendanceHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
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

	items := make([]attendanceResponse, 0, len(list))
	for _, record := range list {
		items = append(items, attendancePayload(record))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
