package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/access"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// ErrDuplicateEmployee reports a second directory entry for one user.
var ErrDuplicateEmployee = errors.New("employees: user already registered")

// RepositoryPort defines data access methods for the directory.
type RepositoryPort interface {
	List(ctx context.Context, department access.Department) ([]Employee, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	Create(ctx context.Context, in CreateInput) (*Employee, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = `
	e.id, e.user_id, u.name, u.email, e.department,
	to_char(e.expected_start_time, 'HH24:MI'),
	to_char(e.expected_end_time, 'HH24:MI'),
	e.created_at, e.updated_at`

// List returns directory entries, optionally narrowed to one department.
func (r *Repository) List(ctx context.Context, department access.Department) ([]Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE $1 = '' OR e.department = $1
		ORDER BY u.name, e.id`

	rows, err := r.pool.Query(ctx, query, string(department))
	if err != nil {
		return nil, fmt.Errorf("employees: list: %w", err)
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("employees: list: %w", err)
	}
	return employees, nil
}

// GetByID fetches one directory entry.
func (r *Repository) GetByID(ctx context.Context, id string) (*Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.id = $1`

	emp, err := scanEmployee(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Create registers a new directory entry. A unique constraint on
// user_id keeps one entry per user.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*Employee, error) {
	const query = `
		INSERT INTO employees (id, user_id, department, expected_start_time, expected_end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $6)
		RETURNING id`

	id := uuid.NewString()
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	var created string
	err := r.pool.QueryRow(ctx, query, id, in.UserID, string(in.Department), in.ExpectedStart, in.ExpectedEnd, now).Scan(&created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmployee
		}
		return nil, fmt.Errorf("employees: create: %w", err)
	}
	return r.GetByID(ctx, created)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var (
		emp       Employee
		dept      string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&emp.ID, &emp.UserID, &emp.Name, &emp.Email, &dept,
		&emp.ExpectedStart, &emp.ExpectedEnd, &createdAt, &updatedAt,
	); err != nil {
		return Employee{}, err
	}
	emp.Department = access.Department(dept)
	emp.CreatedAt = createdAt.Time
	emp.UpdatedAt = updatedAt.Time
	return emp, nil
}

var _ RepositoryPort = (*Repository)(nil)
