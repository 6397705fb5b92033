package certificates

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
	"github.com/alialif/JoinUp-Event-Management/internal/render"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeCertsRepo struct {
	mu    sync.Mutex
	byReg map[string]Certificate
}

func newFakeCertsRepo() *fakeCertsRepo {
	return &fakeCertsRepo{byReg: make(map[string]Certificate)}
}

func (f *fakeCertsRepo) CreateIfAbsent(ctx context.Context, cert Certificate) (*Certificate, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byReg[cert.RegistrationID]; ok {
		return &existing, false, nil
	}
	f.byReg[cert.RegistrationID] = cert
	return &cert, true, nil
}

func (f *fakeCertsRepo) GetByRegistration(ctx context.Context, registrationID string) (*Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cert, ok := f.byReg[registrationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &cert, nil
}

type stubRegistrationsRepo struct {
	regs map[string]registrations.Detail
}

func (s *stubRegistrationsRepo) Allocate(ctx context.Context, id, memberID, eventID string, createdAt time.Time) (*registrations.Registration, error) {
	return nil, registrations.ErrNotFound
}

func (s *stubRegistrationsRepo) GetByID(ctx context.Context, id string) (*registrations.Registration, error) {
	detail, ok := s.regs[id]
	if !ok {
		return nil, registrations.ErrNotFound
	}
	reg := detail.Registration
	return &reg, nil
}

func (s *stubRegistrationsRepo) GetDetail(ctx context.Context, id string) (*registrations.Detail, error) {
	detail, ok := s.regs[id]
	if !ok {
		return nil, registrations.ErrNotFound
	}
	return &detail, nil
}

func (s *stubRegistrationsRepo) ListForEvent(ctx context.Context, eventID string) ([]registrations.Registration, error) {
	return nil, nil
}

type countingRenderer struct {
	mu       sync.Mutex
	calls    int
	lastData render.CertificateData
	err      error
}

func (c *countingRenderer) Render(ctx context.Context, data render.CertificateData) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastData = data
	if c.err != nil {
		return "", c.err
	}
	return fmt.Sprintf("certs/cert-%s.pdf", data.RegistrationID), nil
}

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, actorID, action, entityType, entityID string) {}

func newTestService(renderer *countingRenderer) (*Service, string) {
	regID := ids.MustNewULID()
	regsRepo := &stubRegistrationsRepo{regs: map[string]registrations.Detail{
		regID: {
			Registration: registrations.Registration{
				ID:             regID,
				MemberID:       "m1",
				EventID:        "e1",
				SequentialCode: 7,
				CreatedAt:      time.Now().UTC(),
			},
			Member: members.Member{ID: "m1", Name: "Ada Lovelace"},
			Event:  events.Event{ID: "e1", Title: "Launch Night"},
		},
	}}
	svc := NewService(newFakeCertsRepo(), regsRepo, renderer, noopRecorder{}, time.Second, zerolog.Nop())
	return svc, regID
}

func TestIssue(t *testing.T) {
	renderer := &countingRenderer{}
	svc, regID := newTestService(renderer)

	cert, err := svc.Issue(context.Background(), regID, "staff-1")
	require.NoError(t, err)
	require.Equal(t, regID, cert.RegistrationID)
	require.Equal(t, fmt.Sprintf("certs/cert-%s.pdf", regID), cert.FilePath)
	require.False(t, cert.IssuedAt.IsZero())

	require.Equal(t, 1, renderer.calls)
	require.Equal(t, "Ada Lovelace", renderer.lastData.ParticipantName)
	require.Equal(t, "Launch Night", renderer.lastData.EventTitle)
	require.Equal(t, Payload(regID, 7), renderer.lastData.Payload)
}

func TestIssueIsIdempotent(t *testing.T) {
	renderer := &countingRenderer{}
	svc, regID := newTestService(renderer)
	ctx := context.Background()

	first, err := svc.Issue(ctx, regID, "staff-1")
	require.NoError(t, err)

	second, err := svc.Issue(ctx, regID, "staff-1")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.FilePath, second.FilePath)
	require.Equal(t, first.IssuedAt, second.IssuedAt)

	// The repeat must not re-render the document.
	require.Equal(t, 1, renderer.calls)
}

func TestIssueUnknownRegistration(t *testing.T) {
	svc, _ := newTestService(&countingRenderer{})

	_, err := svc.Issue(context.Background(), ids.MustNewULID(), "staff-1")
	require.ErrorIs(t, err, registrations.ErrNotFound)
}

func TestIssueRenderFailurePersistsNothing(t *testing.T) {
	renderer := &countingRenderer{err: fmt.Errorf("out of ink")}
	svc, regID := newTestService(renderer)
	ctx := context.Background()

	_, err := svc.Issue(ctx, regID, "staff-1")
	require.Error(t, err)

	_, err = svc.GetForRegistration(ctx, regID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPayloadFormat(t *testing.T) {
	require.Equal(t, "abc|12", Payload("abc", 12))
}

func TestVerify(t *testing.T) {
	svc, regID := newTestService(&countingRenderer{})
	ctx := context.Background()

	valid, err := svc.Verify(ctx, regID, "7")
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = svc.Verify(ctx, regID, " 7 ")
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = svc.Verify(ctx, regID, "8")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestVerifyNonNumericCode(t *testing.T) {
	svc, regID := newTestService(&countingRenderer{})

	valid, err := svc.Verify(context.Background(), regID, "seven")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestVerifyUnknownRegistration(t *testing.T) {
	svc, _ := newTestService(&countingRenderer{})

	valid, err := svc.Verify(context.Background(), ids.MustNewULID(), "7")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestVerifyNeedsNoCertificate(t *testing.T) {
	renderer := &countingRenderer{}
	svc, regID := newTestService(renderer)

	// Never issued, still verifiable: truth is the registration record.
	valid, err := svc.Verify(context.Background(), regID, "7")
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, 0, renderer.calls)
}
