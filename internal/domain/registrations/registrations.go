// Package registrations allocates capacity-limited event slots.
//
// Each registration receives a sequential code: a per-event, 1-based
// integer assigned in arrival order. Codes are contiguous at creation
// time and never reused; the code doubles as the human-facing
// verification secret for certificates.
package registrations

import (
	"context"
	"errors"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
)

var (
	ErrNotFound = errors.New("registration not found")

	// ErrAlreadyRegistered is a hard conflict: registering twice for the
	// same event is rejected, not treated as an idempotent repeat.
	ErrAlreadyRegistered = errors.New("member already registered for this event")

	ErrCapacityExceeded = errors.New("event registration capacity reached")
)

type Registration struct {
	ID             string
	MemberID       string
	EventID        string
	SequentialCode int
	CreatedAt      time.Time
}

// Detail is a registration with its member and event attached. The
// join is explicit at the repository boundary so the fetch cost is
// visible in the signature.
type Detail struct {
	Registration
	Member members.Member
	Event  events.Event
}

type Repository interface {
	// Allocate atomically assigns the next sequential code and inserts
	// the registration. The duplicate check, capacity check, and insert
	// are a single unit: implementations must serialize allocations per
	// event so concurrent calls neither collide on codes nor oversell
	// capacity. Returns events.ErrNotFound, ErrAlreadyRegistered, or
	// ErrCapacityExceeded.
	Allocate(ctx context.Context, id, memberID, eventID string, createdAt time.Time) (*Registration, error)

	GetByID(ctx context.Context, id string) (*Registration, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)
	// ListForEvent returns registrations ordered by sequential code
	// ascending. The ordering is load-bearing: it is the queue the
	// attendance and certificate views walk.
	ListForEvent(ctx context.Context, eventID string) ([]Registration, error)
}
