package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ListEmployees fetches employees with their expected schedules,
// optionally narrowed to one department.
func (r *PGRepository) ListEmployees(ctx context.Context, department access.Department) ([]Employee, error) {
	const query = `
		SELECT e.id, e.user_id, u.name, e.department, e.expected_start_time, e.expected_end_time
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE $1 = '' OR e.department = $1
		ORDER BY u.name, e.id`

	rows, err := r.pool.Query(ctx, query, string(department))
	if err != nil {
		return nil, fmt.Errorf("attendance: list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		var (
			emp   Employee
			dept  string
			start pgtype.Time
			end   pgtype.Time
		)
		if err := rows.Scan(&emp.ID, &emp.UserID, &emp.Name, &dept, &start, &end); err != nil {
			return nil, fmt.Errorf("attendance: scan employee: %w", err)
		}
		emp.Department = access.Department(dept)
		emp.ExpectedStart = clockFromPG(start)
		emp.ExpectedEnd = clockFromPG(end)
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attendance: list employees: %w", err)
	}
	return employees, nil
}

// ListRecords fetches raw attendance records in the inclusive window,
// optionally narrowed by employee and department.
func (r *PGRepository) ListRecords(ctx context.Context, from, to time.Time, employeeID string, department access.Department) ([]Record, error) {
	const query = `
		SELECT a.employee_id, a.date, a.check_in, a.check_out
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2
		  AND ($3 = '' OR a.employee_id = $3)
		  AND ($4 = '' OR e.department = $4)
		ORDER BY a.date, a.employee_id`

	rows, err := r.pool.Query(ctx, query,
		pgtype.Date{Time: from, Valid: true},
		pgtype.Date{Time: to, Valid: true},
		employeeID,
		string(department),
	)
	if err != nil {
		return nil, fmt.Errorf("attendance: list records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec      Record
			date     pgtype.Date
			checkIn  pgtype.Timestamptz
			checkOut pgtype.Timestamptz
		)
		if err := rows.Scan(&rec.EmployeeID, &date, &checkIn, &checkOut); err != nil {
			return nil, fmt.Errorf("attendance: scan record: %w", err)
		}
		rec.Date = date.Time
		if checkIn.Valid {
			t := checkIn.Time
			rec.CheckIn = &t
		}
		if checkOut.Valid {
			t := checkOut.Time
			rec.CheckOut = &t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attendance: list records: %w", err)
	}
	return records, nil
}

func clockFromPG(t pgtype.Time) ClockTime {
	if !t.Valid {
		return 0
	}
	return ClockTime(t.Microseconds / int64(time.Minute/time.Microsecond))
}

var _ Repository = (*PGRepository)(nil)
