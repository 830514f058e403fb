package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SlotIntervalMinutes is the fixed consultation slot length. Appointments have
// no per-visit duration; every slot is treated as equal length.
const SlotIntervalMinutes = 30

// AvailabilityEntry is one weekday of a doctor's recurring schedule. A doctor
// has at most one entry per weekday, enforced by a unique index.
type AvailabilityEntry struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_availability_doctor_weekday" json:"doctor_id"`
	Weekday   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_availability_doctor_weekday" json:"weekday"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityEntry) TableName() string {
	return "availability_entries"
}

// WeekdayName returns the lowercase weekday key used by availability entries.
func WeekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// IsValidWeekday reports whether s is a recognized lowercase weekday name.
func IsValidWeekday(s string) bool {
	switch s {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}

// ParseClockTime parses an "HH:MM" wall-clock time into minutes since
// midnight.
func ParseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SlotsForDate computes the ordered list of bookable slot start times for one
// concrete date from a doctor's weekly entries. The result is empty when the
// weekday has no entry or the entry is misconfigured (unparseable times, or
// start at/after end; cross-midnight schedules are not supported). Slot starts
// ascend in fixed 30 minute steps and the last one is strictly before the end
// time. Pure function: same inputs always yield the same output.
func SlotsForDate(entries []AvailabilityEntry, date time.Time) []string {
	weekday := WeekdayName(date)

	var day *AvailabilityEntry
	for i := range entries {
		if entries[i].Weekday == weekday {
			day = &entries[i]
			break
		}
	}
	if day == nil {
		return nil
	}

	start, err := ParseClockTime(day.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseClockTime(day.EndTime)
	if err != nil {
		return nil
	}
	if start >= end {
		return nil
	}

	var slots []string
	for cur := start; cur < end; cur += SlotIntervalMinutes {
		slots = append(slots, formatClockTime(cur))
	}
	return slots
}
