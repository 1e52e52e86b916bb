package attendance

import "time"

// Attendance status values stored in the identities table.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Identity is one enrolled user as shown on the dashboard.
type Identity struct {
	RollNumber string     `json:"roll_number"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
}

// Attendance is a present-today record returned by the day-boundary check.
type Attendance struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// presentToday reports whether a stored status/last_seen pair counts as
// present for the calendar date of now. A stale "present" from a prior day
// does not count; the rule is evaluated at read time, there is no midnight
// reset job.
func presentToday(status string, lastSeen *time.Time, now time.Time) bool {
	if status != StatusPresent || lastSeen == nil {
		return false
	}
	y1, m1, d1 := lastSeen.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
