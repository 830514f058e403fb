package entity

import "testing"

func TestRoleCan(t *testing.T) {
	tests := []struct {
		roleID int
		cap    Capability
		want   bool
	}{
		{RoleIDPatient, CapBookCare, true},
		{RoleIDPatient, CapTreatPatients, false},
		{RoleIDPatient, CapAdminister, false},
		{RoleIDDoctor, CapTreatPatients, true},
		{RoleIDDoctor, CapBookCare, false},
		{RoleIDAdmin, CapAdminister, true},
		{RoleIDAdmin, CapBookCare, false},
		{99, CapBookCare, false},
		{0, CapAdminister, false},
	}

	for _, tt := range tests {
		if got := RoleCan(tt.roleID, tt.cap); got != tt.want {
			t.Errorf("RoleCan(%d, %s) = %v, want %v", tt.roleID, tt.cap, got, tt.want)
		}
	}
}

func TestRoleNameByID(t *testing.T) {
	if RoleNameByID(RoleIDDoctor) != RoleDoctor {
		t.Error("doctor role name mismatch")
	}
	if RoleNameByID(42) != "" {
		t.Error("unknown role should have empty name")
	}
}
