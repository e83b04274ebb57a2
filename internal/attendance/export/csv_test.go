package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/meridian-erp/meridian-erp/internal/attendance"
)

func sampleRow() attendance.ReportRow {
	return attendance.ReportRow{
		EmployeeName:      "Alya Nurlatifa",
		EmployeeID:        "emp-1",
		Date:              "2026-03-02",
		CheckIn:           "09:15",
		CheckOut:          "16:50",
		Status:            attendance.StatusLate,
		TotalWorkingHours: 7.58,
		ExpectedStartTime: "09:00",
		ActualCheckIn:     "09:15",
		MinutesLate:       15,
		ExpectedEndTime:   "17:00",
		ActualCheckOut:    "16:50",
		MinutesEarly:      0,
		TotalAbsentDays:   3,
		AbsencePercentage: 10,
	}
}

func TestWriteReportCSVColumnOrder(t *testing.T) {
	var b strings.Builder
	if err := WriteReportCSV(&b, []attendance.ReportRow{sampleRow()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	wantHeader := "Employee Name,Employee ID,Date,Check-In,Check-Out,Status,Total Working Hours,Expected Start Time,Actual Check-In,Minutes Late,Expected End Time,Actual Check-Out,Minutes Early,Total Absent Days,Absence Percentage"
	if lines[0] != wantHeader {
		t.Fatalf("header mismatch:\n%s", lines[0])
	}
	wantRow := `"Alya Nurlatifa",emp-1,2026-03-02,09:15,16:50,Late,7.58,09:00,09:15,15,17:00,16:50,0,3,10.00`
	if lines[1] != wantRow {
		t.Fatalf("row mismatch:\ngot  %s\nwant %s", lines[1], wantRow)
	}
}

func TestWriteReportCSVNaiveCommaSplitRoundTrip(t *testing.T) {
	row := sampleRow()
	var b strings.Builder
	if err := WriteReportCSV(&b, []attendance.ReportRow{row}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	fields := strings.Split(lines[1], ",")
	if len(fields) != 15 {
		t.Fatalf("a name without commas must split into 15 fields, got %d", len(fields))
	}
	if fields[0] != `"Alya Nurlatifa"` {
		t.Fatalf("name is always quoted, got %s", fields[0])
	}
	if fields[1] != row.EmployeeID || fields[2] != row.Date || fields[5] != string(row.Status) {
		t.Fatalf("verbatim fields mutated: %v", fields)
	}
}

func TestWriteReportCSVEscapesQuotesInName(t *testing.T) {
	row := sampleRow()
	row.EmployeeName = `Budi "Bud" Santoso`

	var b strings.Builder
	if err := WriteReportCSV(&b, []attendance.ReportRow{row}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), `"Budi ""Bud"" Santoso"`) {
		t.Fatalf("embedded quotes must be doubled:\n%s", b.String())
	}
}

func TestWriteReportCSVNoRows(t *testing.T) {
	var b strings.Builder
	err := WriteReportCSV(&b, nil)
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("nothing should be written without rows, got %q", b.String())
	}
}

func TestFilename(t *testing.T) {
	got := Filename("2026-03-01", "2026-03-31")
	want := "attendance-report-2026-03-01-to-2026-03-31.csv"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}
