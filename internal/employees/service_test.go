package employees

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/access"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

type memRepo struct {
	entries   []Employee
	createErr error
}

func (m *memRepo) List(ctx context.Context, department access.Department) ([]Employee, error) {
	if department == "" {
		return m.entries, nil
	}
	out := make([]Employee, 0)
	for _, e := range m.entries {
		if e.Department == department {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Employee, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memRepo) Create(ctx context.Context, in CreateInput) (*Employee, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	emp := Employee{
		ID:            "emp-new",
		UserID:        in.UserID,
		Department:    in.Department,
		ExpectedStart: in.ExpectedStart,
		ExpectedEnd:   in.ExpectedEnd,
	}
	m.entries = append(m.entries, emp)
	return &emp, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListRejectsUnknownDepartment(t *testing.T) {
	svc := NewService(&memRepo{}, nil, newTestLogger())
	_, err := svc.List(context.Background(), access.Department("Janitorial"))
	require.ErrorIs(t, err, ErrUnknownDepartment)
}

func TestListFiltersByDepartment(t *testing.T) {
	repo := &memRepo{entries: []Employee{
		{ID: "emp-1", Department: access.DeptHR},
		{ID: "emp-2", Department: access.DeptSales},
	}}
	svc := NewService(repo, nil, newTestLogger())

	out, err := svc.List(context.Background(), access.DeptSales)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "emp-2", out[0].ID)
}

func TestCreateInvalidatesReports(t *testing.T) {
	repo := &memRepo{}
	inv := &countingInvalidator{}
	svc := NewService(repo, inv, newTestLogger())

	emp, err := svc.Create(context.Background(), CreateInput{
		UserID:        "user-1",
		Department:    access.DeptHR,
		ExpectedStart: "09:00",
		ExpectedEnd:   "17:00",
	})
	require.NoError(t, err)
	require.Equal(t, "user-1", emp.UserID)
	require.Equal(t, 1, inv.calls)
}

func TestCreateUnknownDepartmentSkipsRepo(t *testing.T) {
	repo := &memRepo{createErr: errors.New("should not be called")}
	svc := NewService(repo, nil, newTestLogger())

	_, err := svc.Create(context.Background(), CreateInput{
		UserID:     "user-1",
		Department: access.Department("Janitorial"),
	})
	require.ErrorIs(t, err, ErrUnknownDepartment)
}

func TestCreateDuplicatePropagates(t *testing.T) {
	repo := &memRepo{createErr: ErrDuplicateEmployee}
	inv := &countingInvalidator{}
	svc := NewService(repo, inv, newTestLogger())

	_, err := svc.Create(context.Background(), CreateInput{
		UserID:        "user-1",
		Department:    access.DeptHR,
		ExpectedStart: "09:00",
		ExpectedEnd:   "17:00",
	})
	require.ErrorIs(t, err, ErrDuplicateEmployee)
	require.Zero(t, inv.calls)
}
