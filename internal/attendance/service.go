package attendance

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

// ErrSuperseded reports that a newer report request finished first and
// this result was discarded. Latest request wins: every request gets a
// monotonically increasing sequence number and only the most recent
// issued may commit.
var ErrSuperseded = errors.New("attendance: report superseded by newer request")

// WarningMissingRange is the caller-visible message attached to an
// empty report generated without a complete date window.
const WarningMissingRange = "date range is required before a report can be generated"

// Repository loads the reference and raw attendance data.
type Repository interface {
	ListEmployees(ctx context.Context, department access.Department) ([]Employee, error)
	ListRecords(ctx context.Context, from, to time.Time, employeeID string, department access.Department) ([]Record, error)
}

// Report is the atomic output of one generation request. A new report
// replaces the previous one wholesale; rows are never patched in place.
type Report struct {
	DateFrom    string      `json:"date_from,omitempty"`
	DateTo      string      `json:"date_to,omitempty"`
	GeneratedAt string      `json:"generated_at"`
	Warning     string      `json:"warning,omitempty"`
	Rows        []ReportRow `json:"rows"`
}

// Service coordinates filtering, aggregation and the cache layer.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
	seq    atomic.Uint64
	now    func() time.Time
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// GenerateReport produces the attendance report for the filter window.
// A missing date range yields an empty report carrying a warning, not
// an error; a result overtaken by a newer request yields ErrSuperseded.
func (s *Service) GenerateReport(ctx context.Context, f Filter) (Report, error) {
	seq := s.seq.Add(1)

	if err := f.Validate(); err != nil {
		if errors.Is(err, ErrMissingDateRange) {
			return Report{
				GeneratedAt: s.now().Format(time.RFC3339),
				Warning:     WarningMissingRange,
				Rows:        []ReportRow{},
			}, nil
		}
		return Report{}, err
	}

	key, err := s.cache.BuildKey(ctx, keyReport(f))
	if err != nil {
		return Report{}, err
	}

	var rows []ReportRow
	if err := s.cache.FetchJSON(ctx, key, &rows, func(ctx context.Context) (interface{}, error) {
		return s.buildRows(ctx, f)
	}); err != nil {
		return Report{}, err
	}
	if rows == nil {
		rows = []ReportRow{}
	}

	if !s.commit(seq) {
		return Report{}, ErrSuperseded
	}

	return Report{
		DateFrom:    f.DateFrom.Format("2006-01-02"),
		DateTo:      f.DateTo.Format("2006-01-02"),
		GeneratedAt: s.now().Format(time.RFC3339),
		Rows:        rows,
	}, nil
}

// Invalidate bumps the report cache version after attendance data
// changes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) buildRows(ctx context.Context, f Filter) ([]ReportRow, error) {
	var (
		employees []Employee
		records   []Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.repo.ListEmployees(gctx, f.Department)
		if err != nil {
			return err
		}
		employees = list
		return nil
	})
	g.Go(func() error {
		list, err := s.repo.ListRecords(gctx, f.DateFrom, f.DateTo, f.EmployeeID, f.Department)
		if err != nil {
			return err
		}
		records = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if f.EmployeeID != "" {
		narrowed := employees[:0:0]
		for _, emp := range employees {
			if emp.ID == f.EmployeeID {
				narrowed = append(narrowed, emp)
			}
		}
		employees = narrowed
	}

	filtered, err := FilterRecords(records, f, DepartmentIndex(employees))
	if err != nil {
		return nil, err
	}
	return BuildReport(employees, filtered, f.DateFrom, f.DateTo), nil
}

// commit applies the latest-request-wins rule: a result may only be
// returned when its sequence number is still the most recent issued.
func (s *Service) commit(seq uint64) bool {
	return seq == s.seq.Load()
}
