package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/api/middleware"
	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/certificates"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
)

type CertificatesHandler struct {
	Service *certificates.Service
	Env     string
}

func NewCertificatesHandler(service *certificates.Service, env string) *CertificatesHandler {
	return &CertificatesHandler{Service: service, Env: env}
}

type issueCertificateRequest struct {
	RegistrationID string `json:"registrationId"`
}

type certificateResponse struct {
	ID             string `json:"id"`
	RegistrationID string `json:"registrationId"`
	FilePath       string `json:"filePath"`
	IssuedAt       string `json:"issuedAt"`
}

func certificatePayload(cert certificates.Certificate) certificateResponse {
	return certificateResponse{
		ID:             cert.ID,
		RegistrationID: cert.RegistrationID,
		FilePath:       cert.FilePath,
		IssuedAt:       cert.IssuedAt.UTC().Format(time.RFC3339),
	}
}

func (h *CertificatesHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if err := ids.ValidateULID(req.RegistrationID); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	cert, err := h.Service.Issue(r.Context(), req.RegistrationID, middleware.ActorID(r))
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, certificatePayload(*cert))
}

func (h *CertificatesHandler) GetForRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID := strings.TrimSpace(r.PathValue("id"))
	if err := ids.ValidateULID(registrationID); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	cert, err := h.Service.GetForRegistration(r.Context(), registrationID)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, certificatePayload(*cert))
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// Verify answers whether a scanned payload names a live registration
// whose sequential code matches. Malformed input is a negative answer,
// not an error: scanners get a clean yes or no.
func (h *CertificatesHandler) Verify(w http.ResponseWriter, r *http.Request) {
	registrationID := strings.TrimSpace(r.URL.Query().Get("registrationId"))
	code := strings.TrimSpace(r.URL.Query().Get("code"))

	valid, err := h.Service.Verify(r.Context(), registrationID, code)
	if err != nil {
		writeDomainError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{Valid: valid})
}
