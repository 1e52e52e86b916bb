package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AttendanceDecisions counts submit outcomes by result
// (present, absent, already_present, error).
var AttendanceDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "faceattend_attendance_decisions_total",
	Help: "Attendance submission outcomes.",
}, []string{"result"})

// AdminLogins counts admin login attempts by outcome (ok, rejected, error).
var AdminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "faceattend_admin_logins_total",
	Help: "Admin face login attempts.",
}, []string{"outcome"})
