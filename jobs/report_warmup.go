package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/access"
	"github.com/meridian-erp/meridian-erp/internal/attendance"
)

// ReportWarmupJob pre-populates the attendance report cache so the
// first dashboard request of the day is a cache hit.
type ReportWarmupJob struct {
	Reports *attendance.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reports *attendance.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{
		Reports: reports,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	from, to, err := monthWindow(payload.Month, j.now())
	if err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.String("date_from", from.Format("2006-01-02")), slog.String("date_to", to.Format("2006-01-02")))
	logger.Info("starting report warmup")

	warmed := 0
	for _, dept := range access.Departments() {
		filter := attendance.Filter{DateFrom: from, DateTo: to, Department: dept}
		if _, err := j.Reports.GenerateReport(ctx, filter); err != nil {
			// A concurrent interactive request may outrun the warmup;
			// the cache entry is populated either way.
			if errors.Is(err, attendance.ErrSuperseded) {
				continue
			}
			logger.Error("warm department", slog.String("department", string(dept)), slog.Any("error", err))
			return err
		}
		warmed++
	}

	logger.Info("report warmup complete", slog.Int("departments", warmed))
	return nil
}

func (j *ReportWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// monthWindow resolves an inclusive first..last day window for a
// "2006-01" month tag, defaulting to the month containing now.
func monthWindow(month string, now time.Time) (time.Time, time.Time, error) {
	anchor := now
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		anchor = parsed
	}
	from := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to, nil
}
