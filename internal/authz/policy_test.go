package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		name      string
		role      string
		operation string
		want      bool
	}{
		{"staff creates event", "staff", OpEventCreate, true},
		{"admin creates event", "admin", OpEventCreate, true},
		{"participant creates event", "participant", OpEventCreate, false},
		{"staff deletes event", "staff", OpEventDelete, false},
		{"admin deletes event", "admin", OpEventDelete, true},
		{"staff views audit", "staff", OpAuditView, true},
		{"participant views audit", "participant", OpAuditView, false},
		{"staff promotes member", "staff", OpMemberPromote, false},
		{"admin changes role", "admin", OpMemberChangeRole, true},
		{"participant registers", "participant", OpRegistrationCreate, true},
		{"participant marks attendance", "participant", OpAttendanceMark, false},
		{"staff issues certificate", "staff", OpCertificateIssue, true},
		{"unknown operation is open", "participant", "event.view", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Allowed(tc.role, tc.operation))
		})
	}
}

func TestNormalizeRoleDefaultsToParticipant(t *testing.T) {
	require.Equal(t, RoleParticipant, NormalizeRole(""))
	require.Equal(t, RoleParticipant, NormalizeRole("superuser"))
	require.Equal(t, RoleAdmin, NormalizeRole("  ADMIN "))
	require.Equal(t, RoleStaff, NormalizeRole("Staff"))
}

func TestUnknownRoleGetsParticipantAccess(t *testing.T) {
	require.False(t, Allowed("superuser", OpEventCreate))
	require.True(t, Allowed("superuser", OpRegistrationCreate))
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole("admin"))
	require.True(t, ValidRole("staff"))
	require.True(t, ValidRole(" Participant "))
	require.False(t, ValidRole("superuser"))
	require.False(t, ValidRole(""))
}
