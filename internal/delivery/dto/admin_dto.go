package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type ClinicStatsResponse struct {
	TotalDoctors          int64 `json:"total_doctors"`
	TotalPatients         int64 `json:"total_patients"`
	TotalAppointments     int64 `json:"total_appointments"`
	ScheduledAppointments int64 `json:"scheduled_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
	CancelledAppointments int64 `json:"cancelled_appointments"`
	TotalOrders           int64 `json:"total_orders"`
	TotalLabBookings      int64 `json:"total_lab_bookings"`
}

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	UserName  string                 `json:"user_name,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
