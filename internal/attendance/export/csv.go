// Package export serialises attendance reports for download.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meridian-erp/meridian-erp/internal/attendance"
)

// ErrNoRows reports an export request with nothing to serialise. It is
// surfaced to the caller as a warning, not a failure.
var ErrNoRows = errors.New("export: no data to export")

// The column order is fixed; consumers parse positionally.
var header = []string{
	"Employee Name",
	"Employee ID",
	"Date",
	"Check-In",
	"Check-Out",
	"Status",
	"Total Working Hours",
	"Expected Start Time",
	"Actual Check-In",
	"Minutes Late",
	"Expected End Time",
	"Actual Check-Out",
	"Minutes Early",
	"Total Absent Days",
	"Absence Percentage",
}

// WriteReportCSV emits the report rows as UTF-8 delimited text. Only
// the employee-name field is quoted; embedded quotes in the name are
// doubled. Every other field is written verbatim so a naive
// comma-split reader reconstructs the same values.
func WriteReportCSV(w io.Writer, rows []attendance.ReportRow) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for _, row := range rows {
		fields := []string{
			quoteName(row.EmployeeName),
			row.EmployeeID,
			row.Date,
			row.CheckIn,
			row.CheckOut,
			string(row.Status),
			strconv.FormatFloat(row.TotalWorkingHours, 'f', 2, 64),
			row.ExpectedStartTime,
			row.ActualCheckIn,
			strconv.Itoa(row.MinutesLate),
			row.ExpectedEndTime,
			row.ActualCheckOut,
			strconv.Itoa(row.MinutesEarly),
			strconv.Itoa(row.TotalAbsentDays),
			strconv.FormatFloat(row.AbsencePercentage, 'f', 2, 64),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Filename names the download artifact for the report window.
func Filename(dateFrom, dateTo string) string {
	return fmt.Sprintf("attendance-report-%s-to-%s.csv", dateFrom, dateTo)
}

func quoteName(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
