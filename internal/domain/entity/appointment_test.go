package entity

import "testing"

func TestAppointmentCanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		ok   bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusCompleted, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusScheduled, AppointmentStatusRescheduled, true},
		{AppointmentStatusScheduled, AppointmentStatusScheduled, false},
		{AppointmentStatusRescheduled, AppointmentStatusCompleted, true},
		{AppointmentStatusRescheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusRescheduled, AppointmentStatusRescheduled, false},
		{AppointmentStatusRescheduled, AppointmentStatusScheduled, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, AppointmentStatusRescheduled, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.from}
		if got := a.CanTransitionTo(tt.to); got != tt.ok {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestAppointmentStateFlags(t *testing.T) {
	for _, s := range []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusRescheduled} {
		a := &Appointment{Status: s}
		if !a.IsActive() || a.IsTerminal() {
			t.Errorf("%s should be active and not terminal", s)
		}
	}
	for _, s := range []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled} {
		a := &Appointment{Status: s}
		if a.IsActive() || !a.IsTerminal() {
			t.Errorf("%s should be terminal and not active", s)
		}
	}
}

func TestIsValidAppointmentStatus(t *testing.T) {
	for _, s := range []string{"scheduled", "completed", "cancelled", "rescheduled"} {
		if !IsValidAppointmentStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "pending", "SCHEDULED", "done"} {
		if IsValidAppointmentStatus(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
