package certificates

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
	"github.com/alialif/JoinUp-Event-Management/internal/metrics"
	"github.com/alialif/JoinUp-Event-Management/internal/render"
	"github.com/rs/zerolog"
)

type Service struct {
	repo          Repository
	registrations registrations.Repository
	renderer      render.Renderer
	recorder      audit.Recorder
	renderTimeout time.Duration
	logger        zerolog.Logger
}

func NewService(
	repo Repository,
	registrationRepo registrations.Repository,
	renderer render.Renderer,
	recorder audit.Recorder,
	renderTimeout time.Duration,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:          repo,
		registrations: registrationRepo,
		renderer:      renderer,
		recorder:      recorder,
		renderTimeout: renderTimeout,
		logger:        logger.With().Str("component", "certificates").Logger(),
	}
}

// Issue creates the certificate for a registration, rendering its
// document first. Issuance is idempotent: an existing certificate is
// returned unchanged without re-rendering. It is also all-or-nothing:
// a render failure persists nothing.
func (s *Service) Issue(ctx context.Context, registrationID, actorID string) (*Certificate, error) {
	detail, err := s.registrations.GetDetail(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByRegistration(ctx, registrationID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	renderCtx := ctx
	if s.renderTimeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, s.renderTimeout)
		defer cancel()
	}
	path, err := s.renderer.Render(renderCtx, render.CertificateData{
		RegistrationID:  detail.ID,
		ParticipantName: detail.Member.Name,
		EventTitle:      detail.Event.Title,
		SequentialCode:  detail.SequentialCode,
		Payload:         Payload(detail.ID, detail.SequentialCode),
	})
	if err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}

	cert := Certificate{
		ID:             ids.MustNewULID(),
		RegistrationID: registrationID,
		FilePath:       path,
		IssuedAt:       time.Now().UTC(),
	}
	result, created, err := s.repo.CreateIfAbsent(ctx, cert)
	if err != nil {
		return nil, err
	}
	if created {
		metrics.CertificatesIssued.Inc()
		s.recorder.Record(ctx, actorID, "certificate.issue", "Certificate", result.ID)
	}
	return result, nil
}

// Verify reports whether code matches the registration's sequential
// code. Truth is the live registration record: no certificate needs to
// exist, nothing is mutated, and non-numeric input is simply false.
func (s *Service) Verify(ctx context.Context, registrationID, code string) (bool, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return false, nil
	}

	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, registrations.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return reg.SequentialCode == parsed, nil
}

// GetForRegistration returns the issued certificate for a registration.
func (s *Service) GetForRegistration(ctx context.Context, registrationID string) (*Certificate, error) {
	return s.repo.GetByRegistration(ctx, registrationID)
}
