package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

func TestFilterValidateRequiresBothBounds(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
	}{
		{"both missing", Filter{}},
		{"from missing", Filter{DateTo: day(2026, time.March, 31)}},
		{"to missing", Filter{DateFrom: day(2026, time.March, 1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.filter.Validate(); !errors.Is(err, ErrMissingDateRange) {
				t.Fatalf("expected ErrMissingDateRange, got %v", err)
			}
		})
	}

	complete := Filter{DateFrom: day(2026, time.March, 1), DateTo: day(2026, time.March, 31)}
	if err := complete.Validate(); err != nil {
		t.Fatalf("complete window must validate, got %v", err)
	}
}

func TestFilterRecordsInclusiveBounds(t *testing.T) {
	from := day(2026, time.March, 10)
	to := day(2026, time.March, 12)
	records := []Record{
		{EmployeeID: "emp-1", Date: day(2026, time.March, 9)},
		{EmployeeID: "emp-1", Date: from},
		{EmployeeID: "emp-1", Date: day(2026, time.March, 11)},
		{EmployeeID: "emp-1", Date: to},
		{EmployeeID: "emp-1", Date: day(2026, time.March, 13)},
	}

	out, err := FilterRecords(records, Filter{DateFrom: from, DateTo: to}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("both bounds are inclusive, expected 3 records, got %d", len(out))
	}
	if !out[0].Date.Equal(from) || !out[2].Date.Equal(to) {
		t.Fatalf("boundary dates must survive filtering: %v .. %v", out[0].Date, out[2].Date)
	}
}

func TestFilterRecordsByEmployeeAndDepartment(t *testing.T) {
	from := day(2026, time.March, 1)
	to := day(2026, time.March, 31)
	records := []Record{
		{EmployeeID: "emp-1", Date: day(2026, time.March, 2)},
		{EmployeeID: "emp-2", Date: day(2026, time.March, 2)},
		{EmployeeID: "emp-3", Date: day(2026, time.March, 3)},
	}
	departments := map[string]access.Department{
		"emp-1": access.DeptHR,
		"emp-2": access.DeptSales,
		"emp-3": access.DeptHR,
	}

	out, err := FilterRecords(records, Filter{DateFrom: from, DateTo: to, Department: access.DeptHR}, departments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 HR records, got %d", len(out))
	}

	out, err = FilterRecords(records, Filter{DateFrom: from, DateTo: to, EmployeeID: "emp-2"}, departments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EmployeeID != "emp-2" {
		t.Fatalf("expected only emp-2, got %+v", out)
	}
}

func TestFilterRecordsPreservesOrder(t *testing.T) {
	from := day(2026, time.March, 1)
	to := day(2026, time.March, 31)
	records := []Record{
		{EmployeeID: "emp-2", Date: day(2026, time.March, 5)},
		{EmployeeID: "emp-1", Date: day(2026, time.March, 3)},
		{EmployeeID: "emp-2", Date: day(2026, time.March, 1)},
	}

	out, err := FilterRecords(records, Filter{DateFrom: from, DateTo: to}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range records {
		if out[i].EmployeeID != records[i].EmployeeID || !out[i].Date.Equal(records[i].Date) {
			t.Fatalf("input order must be preserved at index %d", i)
		}
	}
}

func TestFilterRecordsMissingRange(t *testing.T) {
	_, err := FilterRecords([]Record{{EmployeeID: "emp-1", Date: day(2026, time.March, 1)}}, Filter{}, nil)
	if !errors.Is(err, ErrMissingDateRange) {
		t.Fatalf("expected ErrMissingDateRange, got %v", err)
	}
}
