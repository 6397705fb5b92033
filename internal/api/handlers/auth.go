package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
)

type AuthHandler struct {
	Members *members.Service
	Env     string
}

func NewAuthHandler(service *members.Service, env string) *AuthHandler {
	return &AuthHandler{Members: service, Env: env}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate,omitempty"`
	Gender    string `json:"gender,omitempty"`
}

type memberResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func memberPayload(m members.Member) memberResponse {
	resp := memberResponse{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Gender:    m.Gender,
		Role:      m.Role,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.BirthDate != nil {
		resp.BirthDate = m.BirthDate.Format("2006-01-02")
	}
	return resp
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	params := members.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Gender:   req.Gender,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
				members.ValidationError{Field: "birthDate", Message: "must be YYYY-MM-DD"}, h.Env)
			return
		}
		params.BirthDate = &birthDate
	}

	member, err := h.Members.Signup(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, memberPayload(*member))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"accessToken"`
	Member      memberResponse `json:"member"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	result, err := h.Members.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		Member:      memberPayload(result.Member),
	})
}
