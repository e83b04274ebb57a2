package attendance

import (
	"reflect"
	"testing"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

func mustClock(t *testing.T, s string) ClockTime {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("parse clock %q: %v", s, err)
	}
	return c
}

func ts(day time.Time, clock string) *time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	v := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return &v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildReportLatenessAndEarlyLeave(t *testing.T) {
	emp := Employee{
		ID:            "emp-1",
		Name:          "Alya Nurlatifa",
		Department:    access.DeptHR,
		ExpectedStart: mustClock(t, "09:00"),
		ExpectedEnd:   mustClock(t, "17:00"),
	}
	d := day(2026, time.March, 2)
	records := []Record{{
		EmployeeID: "emp-1",
		Date:       d,
		CheckIn:    ts(d, "09:15"),
		CheckOut:   ts(d, "16:50"),
	}}

	rows := BuildReport([]Employee{emp}, records, d, d)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Status != StatusLate {
		t.Fatalf("lateness should take precedence, got %s", row.Status)
	}
	if row.MinutesLate != 15 {
		t.Fatalf("expected 15 minutes late, got %d", row.MinutesLate)
	}
	if row.MinutesEarly != 0 {
		t.Fatalf("lateness suppresses early minutes, got %d", row.MinutesEarly)
	}
	if row.TotalWorkingHours != 7.58 {
		t.Fatalf("expected 7.58 working hours, got %.2f", row.TotalWorkingHours)
	}
	if row.CheckIn != "09:15" || row.CheckOut != "16:50" {
		t.Fatalf("unexpected check times %s / %s", row.CheckIn, row.CheckOut)
	}
}

func TestBuildReportEarlyArrivalClampsToZero(t *testing.T) {
	emp := Employee{
		ID:            "emp-1",
		Name:          "Bima Putra",
		ExpectedStart: mustClock(t, "09:00"),
		ExpectedEnd:   mustClock(t, "17:00"),
	}
	d := day(2026, time.March, 3)
	records := []Record{{
		EmployeeID: "emp-1",
		Date:       d,
		CheckIn:    ts(d, "08:45"),
		CheckOut:   ts(d, "17:30"),
	}}

	rows := BuildReport([]Employee{emp}, records, d, d)
	row := rows[0]
	if row.MinutesLate != 0 {
		t.Fatalf("early arrival must clamp lateness to zero, got %d", row.MinutesLate)
	}
	if row.MinutesEarly != 0 {
		t.Fatalf("late departure must clamp early minutes to zero, got %d", row.MinutesEarly)
	}
	if row.Status != StatusPresent {
		t.Fatalf("expected Present, got %s", row.Status)
	}
}

func TestBuildReportAbsenceAcrossWindow(t *testing.T) {
	emp := Employee{
		ID:            "emp-1",
		Name:          "Citra Dewi",
		ExpectedStart: mustClock(t, "09:00"),
		ExpectedEnd:   mustClock(t, "17:00"),
	}
	from := day(2026, time.June, 1)
	to := day(2026, time.June, 30)
	missed := map[string]bool{"2026-06-05": true, "2026-06-12": true, "2026-06-19": true}
	var records []Record
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if missed[d.Format("2006-01-02")] {
			continue
		}
		records = append(records, Record{
			EmployeeID: "emp-1",
			Date:       d,
			CheckIn:    ts(d, "09:00"),
			CheckOut:   ts(d, "17:00"),
		})
	}

	rows := BuildReport([]Employee{emp}, records, from, to)
	if len(rows) != 30 {
		t.Fatalf("expected 30 rows for a 30-day window, got %d", len(rows))
	}
	absent := 0
	for _, row := range rows {
		if row.Status == StatusAbsent {
			absent++
			if !missed[row.Date] {
				t.Fatalf("unexpected absence on %s", row.Date)
			}
			if row.CheckIn != MissingValue || row.ActualCheckIn != MissingValue {
				t.Fatalf("absent day must show %s, got %s", MissingValue, row.CheckIn)
			}
		}
		if row.TotalAbsentDays != 3 {
			t.Fatalf("every row carries the employee total, got %d", row.TotalAbsentDays)
		}
		if row.AbsencePercentage != 10.00 {
			t.Fatalf("expected 10.00%% absence, got %.2f", row.AbsencePercentage)
		}
	}
	if absent != 3 {
		t.Fatalf("expected 3 absent days, got %d", absent)
	}
}

func TestBuildReportCheckInWithoutCheckOut(t *testing.T) {
	emp := Employee{
		ID:            "emp-1",
		Name:          "Dian Safitri",
		ExpectedStart: mustClock(t, "09:00"),
		ExpectedEnd:   mustClock(t, "17:00"),
	}
	d := day(2026, time.March, 4)
	records := []Record{{
		EmployeeID: "emp-1",
		Date:       d,
		CheckIn:    ts(d, "09:05"),
	}}

	rows := BuildReport([]Employee{emp}, records, d, d)
	row := rows[0]
	if row.Status != StatusLate {
		t.Fatalf("expected Late, got %s", row.Status)
	}
	if row.CheckOut != MissingValue || row.ActualCheckOut != MissingValue {
		t.Fatalf("missing check-out must show %s", MissingValue)
	}
	if row.TotalWorkingHours != 0 {
		t.Fatalf("working hours unknowable without a check-out, got %.2f", row.TotalWorkingHours)
	}
	if row.MinutesEarly != 0 {
		t.Fatalf("early minutes unknowable without a check-out, got %d", row.MinutesEarly)
	}
}

func TestBuildReportCheckOutWithoutCheckInIsAbsent(t *testing.T) {
	emp := Employee{
		ID:            "emp-1",
		Name:          "Eka Ramadhan",
		ExpectedStart: mustClock(t, "09:00"),
		ExpectedEnd:   mustClock(t, "17:00"),
	}
	d := day(2026, time.March, 5)
	records := []Record{{
		EmployeeID: "emp-1",
		Date:       d,
		CheckOut:   ts(d, "17:00"),
	}}

	rows := BuildReport([]Employee{emp}, records, d, d)
	row := rows[0]
	if row.Status != StatusAbsent {
		t.Fatalf("record without check-in counts as absent, got %s", row.Status)
	}
	if row.CheckOut != "17:00" {
		t.Fatalf("recorded check-out still shown, got %s", row.CheckOut)
	}
}

func TestBuildReportDuplicateRecordsFirstWins(t *testing.T) {
	emp := Employee{
		ID:            "emp-1",
		Name:          "Fajar Hidayat",
		ExpectedStart: mustClock(t, "09:00"),
		ExpectedEnd:   mustClock(t, "17:00"),
	}
	d := day(2026, time.March, 6)
	records := []Record{
		{EmployeeID: "emp-1", Date: d, CheckIn: ts(d, "09:00"), CheckOut: ts(d, "17:00")},
		{EmployeeID: "emp-1", Date: d, CheckIn: ts(d, "11:00"), CheckOut: ts(d, "12:00")},
	}

	rows := BuildReport([]Employee{emp}, records, d, d)
	if len(rows) != 1 {
		t.Fatalf("one row per employee/day, got %d", len(rows))
	}
	if rows[0].CheckIn != "09:00" {
		t.Fatalf("first record wins, got check-in %s", rows[0].CheckIn)
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	employees := []Employee{
		{ID: "emp-1", Name: "Gita Lestari", ExpectedStart: mustClock(t, "09:00"), ExpectedEnd: mustClock(t, "17:00")},
		{ID: "emp-2", Name: "Hana Wijaya", ExpectedStart: mustClock(t, "08:00"), ExpectedEnd: mustClock(t, "16:00")},
	}
	from := day(2026, time.April, 1)
	to := day(2026, time.April, 7)
	records := []Record{
		{EmployeeID: "emp-1", Date: day(2026, time.April, 2), CheckIn: ts(day(2026, time.April, 2), "09:20"), CheckOut: ts(day(2026, time.April, 2), "17:00")},
		{EmployeeID: "emp-2", Date: day(2026, time.April, 3), CheckIn: ts(day(2026, time.April, 3), "08:00"), CheckOut: ts(day(2026, time.April, 3), "15:30")},
	}

	first := BuildReport(employees, records, from, to)
	second := BuildReport(employees, records, from, to)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical rows")
	}
	if len(first) != 14 {
		t.Fatalf("expected 2 employees x 7 days = 14 rows, got %d", len(first))
	}
}

func TestBuildReportInvertedWindow(t *testing.T) {
	emp := Employee{ID: "emp-1", Name: "Indra Kusuma"}
	rows := BuildReport([]Employee{emp}, nil, day(2026, time.May, 10), day(2026, time.May, 1))
	if rows != nil {
		t.Fatalf("inverted window yields no rows, got %d", len(rows))
	}
}
