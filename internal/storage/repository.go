// Package storage groups data access by domain.
package storage

import (
	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/attendance"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/certificates"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
)

// Repository groups the per-domain repositories behind one handle.
type Repository interface {
	Members() members.Repository
	Events() events.Repository
	Registrations() registrations.Repository
	Attendance() attendance.Repository
	Certificates() certificates.Repository
	Audit() audit.Repository
}
