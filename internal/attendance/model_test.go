package attendance

import (
	"testing"
	"time"
)

func TestPresentToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)
	earlier := now.Add(-2 * time.Hour)
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	justBeforeMidnight := time.Date(2026, 3, 13, 23, 59, 59, 0, time.Local)

	tests := []struct {
		name     string
		status   string
		lastSeen *time.Time
		want     bool
	}{
		{"present earlier today", StatusPresent, &earlier, true},
		{"present yesterday rolls over", StatusPresent, &yesterday, false},
		{"present last week", StatusPresent, &lastWeek, false},
		{"present seconds before midnight", StatusPresent, &justBeforeMidnight, false},
		{"absent today", StatusAbsent, &earlier, false},
		{"present but never seen", StatusPresent, nil, false},
		{"absent never seen", StatusAbsent, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := presentToday(tt.status, tt.lastSeen, now); got != tt.want {
				t.Errorf("presentToday(%q, %v) = %v, want %v", tt.status, tt.lastSeen, got, tt.want)
			}
		})
	}
}
