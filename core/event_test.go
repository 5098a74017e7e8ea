package core

import (
	"testing"
	"time"
)

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339_z", "2026-06-15T18:00:00Z", time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC), true},
		{"iso_no_tz", "2026-06-15T18:00:00", time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC), true},
		{"date_only", "2026-06-15", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"whitespace", "  2026-06-15  ", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "next tuesday", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventDate(tt.input)
			if tt.ok && err != nil {
				t.Fatalf("ParseEventDate(%q) 失败: %v", tt.input, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("ParseEventDate(%q) 应该报错", tt.input)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseEventDate(%q) = %v，期望 %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 6, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want int
		ok   bool
	}{
		{"same_day_late_hour", "2026-06-01T08:00:00Z", 0, true},
		{"tomorrow", "2026-06-02", 1, true},
		{"next_month", "2026-07-01", 30, true},
		{"yesterday", "2026-05-31", -1, true},
		{"unparseable", "soon", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &Event{ID: "ev_1", Date: tt.date}
			got, ok := ev.DaysUntil(now)
			if ok != tt.ok {
				t.Fatalf("DaysUntil ok = %v，期望 %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("DaysUntil = %d，期望 %d", got, tt.want)
			}
		})
	}
}

func TestPopularityRatio(t *testing.T) {
	tests := []struct {
		name    string
		current int
		max     int
		want    float64
	}{
		{"half_full", 25, 50, 0.5},
		{"full", 50, 50, 1},
		{"empty", 0, 50, 0},
		{"unknown_capacity", 30, 0, 30},
		{"negative_capacity", 7, -1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &Event{CurrentParticipants: tt.current, MaxParticipants: tt.max}
			if got := ev.PopularityRatio(); got != tt.want {
				t.Errorf("PopularityRatio = %v，期望 %v", got, tt.want)
			}
		})
	}
}
