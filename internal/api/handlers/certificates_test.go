package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/certificates"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
	"github.com/alialif/JoinUp-Event-Management/internal/render"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubCertsRepo struct {
	byReg map[string]certificates.Certificate
}

func (s *stubCertsRepo) CreateIfAbsent(ctx context.Context, cert certificates.Certificate) (*certificates.Certificate, bool, error) {
	if existing, ok := s.byReg[cert.RegistrationID]; ok {
		return &existing, false, nil
	}
	s.byReg[cert.RegistrationID] = cert
	return &cert, true, nil
}

func (s *stubCertsRepo) GetByRegistration(ctx context.Context, registrationID string) (*certificates.Certificate, error) {
	cert, ok := s.byReg[registrationID]
	if !ok {
		return nil, certificates.ErrNotFound
	}
	return &cert, nil
}

type stubRegsRepo struct {
	regs map[string]registrations.Detail
}

func (s *stubRegsRepo) Allocate(ctx context.Context, id, memberID, eventID string, createdAt time.Time) (*registrations.Registration, error) {
	return nil, registrations.ErrNotFound
}

func (s *stubRegsRepo) GetByID(ctx context.Context, id string) (*registrations.Registration, error) {
	detail, ok := s.regs[id]
	if !ok {
		return nil, registrations.ErrNotFound
	}
	reg := detail.Registration
	return &reg, nil
}

func (s *stubRegsRepo) GetDetail(ctx context.Context, id string) (*registrations.Detail, error) {
	detail, ok := s.regs[id]
	if !ok {
		return nil, registrations.ErrNotFound
	}
	return &detail, nil
}

func (s *stubRegsRepo) ListForEvent(ctx context.Context, eventID string) ([]registrations.Registration, error) {
	return nil, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(ctx context.Context, data render.CertificateData) (string, error) {
	return fmt.Sprintf("certs/cert-%s.pdf", data.RegistrationID), nil
}

type discardRecorder struct{}

func (discardRecorder) Record(ctx context.Context, actorID, action, entityType, entityID string) {}

func newCertificatesHandler() (*CertificatesHandler, string) {
	regID := ids.MustNewULID()
	regsRepo := &stubRegsRepo{regs: map[string]registrations.Detail{
		regID: {
			Registration: registrations.Registration{ID: regID, MemberID: "m1", EventID: "e1", SequentialCode: 7},
			Member:       members.Member{ID: "m1", Name: "Ada"},
			Event:        events.Event{ID: "e1", Title: "Launch Night"},
		},
	}}
	svc := certificates.NewService(
		&stubCertsRepo{byReg: make(map[string]certificates.Certificate)},
		regsRepo, stubRenderer{}, discardRecorder{}, time.Second, zerolog.Nop(),
	)
	return NewCertificatesHandler(svc, "test"), regID
}

func TestCertificatesVerify(t *testing.T) {
	handler, regID := newCertificatesHandler()

	cases := []struct {
		name  string
		query string
		valid bool
	}{
		{"match", "registrationId=" + regID + "&code=7", true},
		{"wrong code", "registrationId=" + regID + "&code=8", false},
		{"non-numeric code", "registrationId=" + regID + "&code=seven", false},
		{"unknown registration", "registrationId=" + ids.MustNewULID() + "&code=7", false},
		{"missing params", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/certificates/verify?"+tc.query, nil)
			rec := httptest.NewRecorder()
			handler.Verify(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp map[string]bool
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tc.valid, resp["valid"])
		})
	}
}

func TestCertificatesIssueThenVerify(t *testing.T) {
	handler, regID := newCertificatesHandler()

	body := fmt.Sprintf(`{"registrationId":%q}`, regID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Issue(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var issued map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	require.Equal(t, regID, issued["registrationId"])

	// Re-issuing returns the same certificate.
	rec2 := httptest.NewRecorder()
	handler.Issue(rec2, httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec2.Code)
	var reissued map[string]any
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &reissued))
	require.Equal(t, issued["id"], reissued["id"])
}

func TestCertificatesIssueUnknownRegistration(t *testing.T) {
	handler, _ := newCertificatesHandler()

	body := fmt.Sprintf(`{"registrationId":%q}`, ids.MustNewULID())
	rec := httptest.NewRecorder()
	handler.Issue(rec, httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(body)))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
