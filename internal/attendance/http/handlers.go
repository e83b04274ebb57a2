package attendancehttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/access"
	"github.com/meridian-erp/meridian-erp/internal/attendance"
	"github.com/meridian-erp/meridian-erp/internal/attendance/export"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

const requestTimeout = 5 * time.Second

// ReportService defines the report data contract used by the handler.
type ReportService interface {
	GenerateReport(ctx context.Context, f attendance.Filter) (attendance.Report, error)
}

// Handler coordinates HTTP requests for attendance reporting.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	validate *validator.Validate
	observe  func(time.Duration)
}

// NewHandler constructs the attendance HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// WithReportObserver registers a callback receiving the wall time of
// each report generation.
func (h *Handler) WithReportObserver(fn func(time.Duration)) {
	h.observe = fn
}

func (h *Handler) generate(ctx context.Context, filter attendance.Filter) (attendance.Report, error) {
	start := time.Now()
	report, err := h.service.GenerateReport(ctx, filter)
	if err == nil && h.observe != nil {
		h.observe(time.Since(start))
	}
	return report, err
}

type filterQuery struct {
	DateFrom   string `validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `validate:"omitempty,datetime=2006-01-02"`
	EmployeeID string `validate:"omitempty,max=64"`
	Department string `validate:"omitempty,max=32"`
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.generate(ctx, filter)
	if err != nil {
		if errors.Is(err, attendance.ErrSuperseded) {
			httpx.Problem(w, http.StatusConflict, "Superseded", "a newer report request replaced this one")
			return
		}
		h.logError("generate report", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.generate(ctx, filter)
	if err != nil {
		if errors.Is(err, attendance.ErrSuperseded) {
			httpx.Problem(w, http.StatusConflict, "Superseded", "a newer report request replaced this one")
			return
		}
		h.logError("generate report", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	if report.Warning != "" {
		httpx.JSON(w, http.StatusOK, map[string]string{"warning": report.Warning})
		return
	}

	filename := export.Filename(report.DateFrom, report.DateTo)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteReportCSV(w, report.Rows); err != nil {
		if errors.Is(err, export.ErrNoRows) {
			w.Header().Del("Content-Disposition")
			w.Header().Set("Content-Type", "application/json")
			httpx.JSON(w, http.StatusOK, map[string]string{"warning": "no data to export"})
			return
		}
		h.logError("stream csv", err)
	}
}

func (h *Handler) parseFilter(r *http.Request) (attendance.Filter, error) {
	q := r.URL.Query()
	raw := filterQuery{
		DateFrom:   strings.TrimSpace(q.Get("date_from")),
		DateTo:     strings.TrimSpace(q.Get("date_to")),
		EmployeeID: strings.TrimSpace(q.Get("employee_id")),
		Department: strings.TrimSpace(q.Get("department")),
	}
	if err := h.validate.Struct(raw); err != nil {
		return attendance.Filter{}, fmt.Errorf("invalid report filters: %w", err)
	}

	filter := attendance.Filter{
		EmployeeID: raw.EmployeeID,
		Department: access.Department(raw.Department),
	}
	if raw.DateFrom != "" {
		from, err := time.Parse("2006-01-02", raw.DateFrom)
		if err != nil {
			return attendance.Filter{}, fmt.Errorf("invalid report filters: %w", err)
		}
		filter.DateFrom = from
	}
	if raw.DateTo != "" {
		to, err := time.Parse("2006-01-02", raw.DateTo)
		if err != nil {
			return attendance.Filter{}, fmt.Errorf("invalid report filters: %w", err)
		}
		filter.DateTo = to
	}
	return filter, nil
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

// HandleReportForTest exposes the JSON handler for tests.
func (h *Handler) HandleReportForTest(w http.ResponseWriter, r *http.Request) { h.handleReport(w, r) }

// HandleCSVForTest exposes the CSV handler for tests.
func (h *Handler) HandleCSVForTest(w http.ResponseWriter, r *http.Request) { h.handleCSV(w, r) }
