package attendance

import (
	"context"
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
		logger:   logger.With().Str("component", "attendance").Logger(),
	}
}

// Mark records the member's presence at the event. Marking twice is
// not an error: the existing record comes back unchanged. A prior
// registration is not required; walk-ins are recorded as-is.
func (s *Service) Mark(ctx context.Context, memberID, eventID, actorID string) (*Attendance, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	record := Attendance{
		ID:         ids.MustNewULID(),
		MemberID:   memberID,
		EventID:    eventID,
		AttendedAt: time.Now().UTC(),
	}
	result, created, err := s.repo.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, err
	}
	if created {
		metrics.AttendanceMarked.Inc()
		s.recorder.Record(ctx, actorID, "attendance.mark", "Attendance", result.ID)
	}
	return result, nil
}

// ListForEvent returns the event's attendance in arrival order after
// confirming the event exists.
func (s *Service) ListForEvent(ctx context.Context, eventID string) ([]Attendance, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListForEvent(ctx, eventID)
}
