// Package audit records write-once fact entries for every successful
// mutation: who did what to which entity, and when.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Entry is a single append-only audit fact.
type Entry struct {
	ID         string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	CreatedAt  time.Time
}

// DefaultListLimit caps the admin read path when no limit is given.
const DefaultListLimit = 100

// Repository is the append-only storage contract for audit entries.
// The read path exists only for the admin/staff audit view.
type Repository interface {
	Append(ctx context.Context, entry Entry) (*Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Recorder is the narrow capability injected into the domain services.
// Recording is best-effort: a failed audit write never fails the
// mutation that triggered it, but it is attempted synchronously so a
// successful response implies the write was at least tried.
type Recorder interface {
	Record(ctx context.Context, actorID, action, entityType, entityID string)
}

type StoreRecorder struct {
	repo   Repository
	logger zerolog.Logger
}

func NewStoreRecorder(repo Repository, logger zerolog.Logger) *StoreRecorder {
	return &StoreRecorder{
		repo:   repo,
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

func (r *StoreRecorder) Record(ctx context.Context, actorID, action, entityType, entityID string) {
	entry := Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Error().
			Err(err).
			Str("action", action).
			Str("actor_id", actorID).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("audit append failed")
	}
}

// Service exposes the audit read path for the admin view.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the newest entries first. A non-positive or oversized
// limit falls back to DefaultListLimit.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	return s.repo.List(ctx, limit)
}
