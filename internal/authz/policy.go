// Package authz implements the coarse access policy: a static table
// mapping operations to the roles permitted to perform them.
package authz

import "strings"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleStaff       Role = "staff"
	RoleParticipant Role = "participant"
)

// Operation names gate the mutating and privileged read paths.
// An operation absent from the policy table is open to any
// authenticated caller.
const (
	OpEventCreate        = "event.create"
	OpEventUpdate        = "event.update"
	OpEventDelete        = "event.delete"
	OpMemberList         = "member.list"
	OpMemberPromote      = "member.promote"
	OpMemberChangeRole   = "member.change_role"
	OpAuditView          = "audit.view"
	OpRegistrationCreate = "registration.create"
	OpAttendanceMark     = "attendance.mark"
	OpCertificateIssue   = "certificate.issue"
)

var policy = map[string][]Role{
	OpEventCreate:      {RoleAdmin, RoleStaff},
	OpEventUpdate:      {RoleAdmin, RoleStaff},
	OpEventDelete:      {RoleAdmin},
	OpMemberList:       {RoleAdmin, RoleStaff},
	OpMemberPromote:    {RoleAdmin},
	OpMemberChangeRole: {RoleAdmin},
	OpAuditView:        {RoleAdmin, RoleStaff},
	OpAttendanceMark:   {RoleAdmin, RoleStaff},
	OpCertificateIssue: {RoleAdmin, RoleStaff},
}

func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleStaff):
		return RoleStaff
	case string(RoleParticipant):
		return RoleParticipant
	default:
		return RoleParticipant
	}
}

func ValidRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin), string(RoleStaff), string(RoleParticipant):
		return true
	default:
		return false
	}
}

// Allowed reports whether a role may perform an operation. Operations
// without a policy entry are open.
func Allowed(role string, operation string) bool {
	required, ok := policy[operation]
	if !ok {
		return true
	}
	current := NormalizeRole(role)
	for _, candidate := range required {
		if current == candidate {
			return true
		}
	}
	return false
}

func IsAdmin(role string) bool {
	return NormalizeRole(role) == RoleAdmin
}
