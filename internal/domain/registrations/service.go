package registrations

import (
	"context"
	"errors"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/metrics"
	"github.com/rs/zerolog"
)

type Service struct {
	repo     Repository
	members  members.Repository
	events   events.Repository
	recorder audit.Recorder
	logger   zerolog.Logger
}

func NewService(
	repo Repository,
	memberRepo members.Repository,
	eventRepo events.Repository,
	recorder audit.Recorder,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		members:  memberRepo,
		events:   eventRepo,
		recorder: recorder,
		logger:   logger.With().Str("component", "registrations").Logger(),
	}
}

// Register allocates a slot for the member on the event.
//
// The existence checks here give callers precise errors; the
// repository re-validates everything that matters inside its atomic
// allocation, so a race between this check and the insert cannot
// corrupt the sequence.
func (s *Service) Register(ctx context.Context, memberID, eventID, actorID string) (*Registration, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	reg, err := s.repo.Allocate(ctx, ids.MustNewULID(), memberID, eventID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyRegistered):
			metrics.RegistrationsRejected.WithLabelValues("duplicate").Inc()
		case errors.Is(err, ErrCapacityExceeded):
			metrics.RegistrationsRejected.WithLabelValues("capacity").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsAllocated.Inc()
	s.recorder.Record(ctx, actorID, "registration.create", "Registration", reg.ID)
	s.logger.Debug().
		Str("registration_id", reg.ID).
		Str("event_id", eventID).
		Int("sequential_code", reg.SequentialCode).
		Msg("registration allocated")
	return reg, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Registration, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForEvent returns the event's registrations in sequential-code
// order after confirming the event exists.
func (s *Service) ListForEvent(ctx context.Context, eventID string) ([]Registration, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListForEvent(ctx, eventID)
}
