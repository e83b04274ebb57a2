package attendance

import (
	"errors"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

// ErrMissingDateRange signals that a report window was requested
// without both date bounds. Callers surface it as a warning with an
// empty result, never as a crash.
var ErrMissingDateRange = errors.New("attendance: report window requires both date bounds")

// Filter narrows the raw attendance dataset before aggregation.
// DateFrom and DateTo are inclusive and required; the rest is optional.
type Filter struct {
	DateFrom   time.Time
	DateTo     time.Time
	EmployeeID string
	Department access.Department
}

// Validate checks the required window bounds.
func (f Filter) Validate() error {
	if f.DateFrom.IsZero() || f.DateTo.IsZero() {
		return ErrMissingDateRange
	}
	return nil
}

// FilterRecords returns the subsequence of records inside the filter
// window that match the optional employee and department criteria,
// order preserved. The departments index maps employee IDs to their
// department for the department criterion.
func FilterRecords(records []Record, f Filter, departments map[string]access.Department) ([]Record, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	from := dateOnly(f.DateFrom)
	to := dateOnly(f.DateTo)

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		day := dateOnly(rec.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		if f.EmployeeID != "" && rec.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Department != "" && departments[rec.EmployeeID] != f.Department {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// DepartmentIndex builds the employee→department lookup used by the
// department criterion.
func DepartmentIndex(employees []Employee) map[string]access.Department {
	idx := make(map[string]access.Department, len(employees))
	for _, emp := range employees {
		idx[emp.ID] = emp.Department
	}
	return idx
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
