package attendance

import (
	"math"
	"time"
)

// BuildReport converts filtered records plus each employee's expected
// schedule into one ReportRow per (employee, day) in the window. It is
// a pure function: identical inputs always yield identical row
// sequences. Employees appear in input order, days ascending.
func BuildReport(employees []Employee, records []Record, dateFrom, dateTo time.Time) []ReportRow {
	from := dateOnly(dateFrom)
	to := dateOnly(dateTo)
	if from.After(to) {
		return nil
	}
	totalDays := int(to.Sub(from).Hours()/24) + 1

	byEmployee := indexRecords(records)

	rows := make([]ReportRow, 0, len(employees)*totalDays)
	for _, emp := range employees {
		start := len(rows)
		absent := 0
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			row := buildRow(emp, day, byEmployee[emp.ID][day.Format("2006-01-02")])
			if row.Status == StatusAbsent {
				absent++
			}
			rows = append(rows, row)
		}
		pct := clampPercent(float64(absent) / float64(totalDays) * 100)
		for i := start; i < len(rows); i++ {
			rows[i].TotalAbsentDays = absent
			rows[i].AbsencePercentage = pct
		}
	}
	return rows
}

// buildRow derives one employee/day row. A nil record, or a record
// with no check-in, counts as an absence. Malformed or missing
// timestamps degrade to "N/A"/0 instead of failing the report.
func buildRow(emp Employee, day time.Time, rec *Record) ReportRow {
	row := ReportRow{
		EmployeeName:      emp.Name,
		EmployeeID:        emp.ID,
		Date:              day.Format("2006-01-02"),
		CheckIn:           MissingValue,
		CheckOut:          MissingValue,
		ActualCheckIn:     MissingValue,
		ActualCheckOut:    MissingValue,
		ExpectedStartTime: emp.ExpectedStart.String(),
		ExpectedEndTime:   emp.ExpectedEnd.String(),
	}

	if rec == nil || rec.CheckIn == nil {
		row.Status = StatusAbsent
		if rec != nil && rec.CheckOut != nil {
			row.CheckOut = rec.CheckOut.Format("15:04")
			row.ActualCheckOut = row.CheckOut
		}
		return row
	}

	checkIn := *rec.CheckIn
	row.CheckIn = checkIn.Format("15:04")
	row.ActualCheckIn = row.CheckIn
	if late := int(ClockOf(checkIn) - emp.ExpectedStart); late > 0 {
		row.MinutesLate = late
	}

	if rec.CheckOut != nil {
		checkOut := *rec.CheckOut
		row.CheckOut = checkOut.Format("15:04")
		row.ActualCheckOut = row.CheckOut
		if early := int(emp.ExpectedEnd - ClockOf(checkOut)); early > 0 {
			row.MinutesEarly = early
		}
		if hours := checkOut.Sub(checkIn).Hours(); hours > 0 {
			row.TotalWorkingHours = round2(hours)
		}
	}

	// Lateness takes precedence over early departure: the day is
	// reported as Late and its early-leave minutes are suppressed.
	switch {
	case row.MinutesLate > 0:
		row.MinutesEarly = 0
		row.Status = StatusLate
	case row.MinutesEarly > 0:
		row.Status = StatusEarlyLeave
	default:
		row.Status = StatusPresent
	}
	return row
}

// indexRecords keys records by employee and day. The first record for
// a given (employee, day) pair wins, preserving the one-row-per-pair
// invariant against duplicate inputs.
func indexRecords(records []Record) map[string]map[string]*Record {
	idx := make(map[string]map[string]*Record)
	for i := range records {
		rec := &records[i]
		days, ok := idx[rec.EmployeeID]
		if !ok {
			days = make(map[string]*Record)
			idx[rec.EmployeeID] = days
		}
		key := dateOnly(rec.Date).Format("2006-01-02")
		if _, exists := days[key]; !exists {
			days[key] = rec
		}
	}
	return idx
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return round2(v)
}
