package entity

import (
	"reflect"
	"testing"
	"time"
)

// 2026-08-31 is a Monday.
var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

func entry(weekday, start, end string) AvailabilityEntry {
	return AvailabilityEntry{Weekday: weekday, StartTime: start, EndTime: end}
}

func TestSlotsForDate(t *testing.T) {
	tests := []struct {
		name    string
		entries []AvailabilityEntry
		date    time.Time
		want    []string
	}{
		{
			name:    "two hour window yields four slots",
			entries: []AvailabilityEntry{entry("monday", "09:00", "11:00")},
			date:    monday,
			want:    []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:    "no entry for the weekday",
			entries: []AvailabilityEntry{entry("tuesday", "09:00", "11:00")},
			date:    monday,
			want:    nil,
		},
		{
			name:    "no entries at all",
			entries: nil,
			date:    monday,
			want:    nil,
		},
		{
			name:    "last slot strictly before end",
			entries: []AvailabilityEntry{entry("monday", "09:00", "10:30")},
			date:    monday,
			want:    []string{"09:00", "09:30", "10:00"},
		},
		{
			name:    "minute rollover into the hour",
			entries: []AvailabilityEntry{entry("monday", "09:45", "11:00")},
			date:    monday,
			want:    []string{"09:45", "10:15", "10:45"},
		},
		{
			name:    "start equal to end is misconfiguration",
			entries: []AvailabilityEntry{entry("monday", "09:00", "09:00")},
			date:    monday,
			want:    nil,
		},
		{
			name:    "end before start does not wrap past midnight",
			entries: []AvailabilityEntry{entry("monday", "22:00", "02:00")},
			date:    monday,
			want:    nil,
		},
		{
			name:    "unparseable time yields nothing",
			entries: []AvailabilityEntry{entry("monday", "9am", "11:00")},
			date:    monday,
			want:    nil,
		},
		{
			name:    "evening window stays within the day",
			entries: []AvailabilityEntry{entry("monday", "23:00", "23:59")},
			date:    monday,
			want:    []string{"23:00", "23:30"},
		},
		{
			name: "picks the matching weekday among several",
			entries: []AvailabilityEntry{
				entry("sunday", "08:00", "12:00"),
				entry("monday", "14:00", "15:00"),
			},
			date: monday,
			want: []string{"14:00", "14:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotsForDate(tt.entries, tt.date)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SlotsForDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlotsForDateDeterministic(t *testing.T) {
	entries := []AvailabilityEntry{entry("monday", "09:00", "11:00")}
	first := SlotsForDate(entries, monday)
	for i := 0; i < 10; i++ {
		if got := SlotsForDate(entries, monday); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	if m, err := ParseClockTime("13:45"); err != nil || m != 13*60+45 {
		t.Errorf("ParseClockTime(13:45) = %d, %v", m, err)
	}
	if _, err := ParseClockTime("25:00"); err == nil {
		t.Error("ParseClockTime(25:00) should fail")
	}
	if _, err := ParseClockTime("0930"); err == nil {
		t.Error("ParseClockTime(0930) should fail")
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(monday); got != "monday" {
		t.Errorf("WeekdayName() = %q, want monday", got)
	}
	if !IsValidWeekday("sunday") || IsValidWeekday("someday") {
		t.Error("IsValidWeekday mismatch")
	}
}
