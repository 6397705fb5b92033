// Package attendance records member presence at events.
package attendance

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("attendance record not found")

type Attendance struct {
	ID         string
	MemberID   string
	EventID    string
	AttendedAt time.Time
}

type Repository interface {
	// CreateIfAbsent inserts an attendance record unless one already
	// exists for (memberID, eventID), in which case the existing record
	// is returned with created=false. The check and insert must be
	// atomic: a storage uniqueness constraint plus re-read on conflict,
	// not a bare check-then-insert.
	CreateIfAbsent(ctx context.Context, record Attendance) (result *Attendance, created bool, err error)

	// ListForEvent returns attendance ordered by timestamp ascending.
	ListForEvent(ctx context.Context, eventID string) ([]Attendance, error)
}
