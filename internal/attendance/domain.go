package attendance

import (
	"fmt"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

// Status classifies one employee/day attendance outcome.
type Status string

const (
	StatusPresent    Status = "Present"
	StatusLate       Status = "Late"
	StatusEarlyLeave Status = "EarlyLeave"
	StatusAbsent     Status = "Absent"
)

// MissingValue is emitted for timestamps that were never recorded.
const MissingValue = "N/A"

// ClockTime is a wall-clock time of day in minutes since midnight.
// Schedules are compared in local wall-clock terms; no timezone
// conversion happens in the reporting core.
type ClockTime int

// ParseClock parses a "15:04" formatted clock value.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("attendance: parse clock %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// ClockOf extracts the wall-clock minutes of a timestamp.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

// String renders the clock value as "15:04".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Employee carries the schedule reference data for one employee.
type Employee struct {
	ID            string
	UserID        string
	Name          string
	Department    access.Department
	ExpectedStart ClockTime
	ExpectedEnd   ClockTime
}

// Record is one raw attendance entry as returned by the backend.
type Record struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
}

// ReportRow is one employee/day attendance summary with derived
// punctuality metrics. Rows are recomputed wholesale on every filter
// change and never mutated in place.
type ReportRow struct {
	EmployeeName      string  `json:"employee_name"`
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	CheckIn           string  `json:"check_in"`
	CheckOut          string  `json:"check_out"`
	Status            Status  `json:"status"`
	TotalWorkingHours float64 `json:"total_working_hours"`
	ExpectedStartTime string  `json:"expected_start_time"`
	ActualCheckIn     string  `json:"actual_check_in"`
	MinutesLate       int     `json:"minutes_late"`
	ExpectedEndTime   string  `json:"expected_end_time"`
	ActualCheckOut    string  `json:"actual_check_out"`
	MinutesEarly      int     `json:"minutes_early"`
	TotalAbsentDays   int     `json:"total_absent_days"`
	AbsencePercentage float64 `json:"absence_percentage"`
}
