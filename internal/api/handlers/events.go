package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

type eventRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	MaxRegistrations int      `json:"maxRegistrations,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Price            string   `json:"price,omitempty"`
}

type eventResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	MaxRegistrations int      `json:"maxRegistrations"`
	Categories       []string `json:"categories"`
	Price            string   `json:"price"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

func eventPayload(e events.Event) eventResponse {
	categories := e.Categories
	if categories == nil {
		categories = []string{}
	}
	return eventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		StartDate:        e.StartDate.UTC().Format(time.RFC3339),
		EndDate:          e.EndDate.UTC().Format(time.RFC3339),
		MaxRegistrations: e.MaxRegistrations,
		Categories:       categories,
		Price:            e.Price,
		CreatedAt:        e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func parseEventDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, events.ValidationError{Field: field, Message: "must be an RFC 3339 timestamp"}
	}
	return parsed, nil
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	items := make([]eventResponse, 0, len(list))
	for _, event := range list {
		items = append(items, eventPayload(event))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	params := events.CreateParams{
		Title:            req.Title,
		Description:      req.Description,
		MaxRegistrations: req.MaxRegistrations,
		Categories:       req.Categories,
		Price:            req.Price,
	}
	var err error
	if params.StartDate, err = parseEventDate("startDate", req.StartDate); err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	if params.EndDate, err = parseEventDate("endDate", req.EndDate); err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	event, err := h.Service.Create(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusCreated, eventPayload(*event))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, eventPayload(*event))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	// Raw-map decode distinguishes "field absent" from "field set to
	// its zero value" for the partial update.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	params, err := decodeEventUpdate(raw)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	event, err := h.Service.Update(r.Context(), id, params)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, eventPayload(*event))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventsHandler) eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := ids.ValidateULID(id); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			events.ValidationError{Field: "id", Message: "must be a ULID"}, h.Env)
		return "", false
	}
	return id, true
}

func decodeEventUpdate(raw map[string]json.RawMessage) (events.UpdateParams, error) {
	var params events.UpdateParams
	for key, value := range raw {
		switch key {
		case "title":
			if err := json.Unmarshal(value, &params.Title); err != nil {
				return params, events.ValidationError{Field: "title", Message: "must be a string"}
			}
		case "description":
			if err := json.Unmarshal(value, &params.Description); err != nil {
				return params, events.ValidationError{Field: "description", Message: "must be a string"}
			}
		case "startDate":
			parsed, err := decodeDateField("startDate", value)
			if err != nil {
				return params, err
			}
			params.StartDate = parsed
		case "endDate":
			parsed, err := decodeDateField("endDate", value)
			if err != nil {
				return params, err
			}
			params.EndDate = parsed
		case "maxRegistrations":
			if err := json.Unmarshal(value, &params.MaxRegistrations); err != nil {
				return params, events.ValidationError{Field: "maxRegistrations", Message: "must be an integer"}
			}
		case "categories":
			if err := json.Unmarshal(value, &params.Categories); err != nil {
				return params, events.ValidationError{Field: "categories", Message: "must be a string array"}
			}
		case "price":
			if err := json.Unmarshal(value, &params.Price); err != nil {
				return params, events.ValidationError{Field: "price", Message: "must be a string"}
			}
		}
	}
	return params, nil
}

func decodeDateField(field string, value json.RawMessage) (*time.Time, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, events.ValidationError{Field: field, Message: "must be a string"}
	}
	parsed, err := parseEventDate(field, s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
