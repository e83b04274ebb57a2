package employees

import (
	"context"
	"errors"
	"log/slog"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

// ErrUnknownDepartment reports a department outside the platform table.
var ErrUnknownDepartment = errors.New("employees: unknown department")

// ReportInvalidator lets the directory drop stale attendance reports
// when the employee roster changes.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles directory business logic.
type Service struct {
	repo        RepositoryPort
	invalidator ReportInvalidator
	logger      *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, invalidator ReportInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, invalidator: invalidator, logger: logger}
}

// List returns directory entries for a department, or all of them.
func (s *Service) List(ctx context.Context, department access.Department) ([]Employee, error) {
	if department != "" && !knownDepartment(department) {
		return nil, ErrUnknownDepartment
	}
	return s.repo.List(ctx, department)
}

// Get fetches one directory entry.
func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a new employee and drops cached reports, which are
// keyed on the roster.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Employee, error) {
	if !knownDepartment(in.Department) {
		return nil, ErrUnknownDepartment
	}
	emp, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.logger.Warn("invalidate reports", slog.Any("error", err))
		}
	}
	return emp, nil
}

func knownDepartment(dept access.Department) bool {
	for _, d := range access.Departments() {
		if d == dept {
			return true
		}
	}
	return false
}
