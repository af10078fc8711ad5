package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/studydash/internal/dto"
	"github.com/noah-isme/studydash/internal/kpi"
	"github.com/noah-isme/studydash/internal/models"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
	"github.com/noah-isme/studydash/pkg/export"
)

type progressRepository interface {
	Aggregates(ctx context.Context, programID int64) (models.ProgressAggregates, error)
	LatestPerModule(ctx context.Context, programID int64) ([]models.ModuleProgress, error)
	CompletionsChronological(ctx context.Context, programID int64) ([]models.Completion, error)
}

type dashboardMetrics interface {
	ObserveDBQuery(label string, duration time.Duration)
	ObserveKPICompute(programID int64, completion float64, duration time.Duration)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CreditsPerSemester int
}

// DashboardService composes the dashboard of a program from live aggregates.
// Nothing is cached; every call reflects the last committed mutation.
type DashboardService struct {
	programs programReader
	progress progressRepository
	metrics  dashboardMetrics
	logger   *zap.Logger
	cfg      DashboardServiceConfig
	now      func() time.Time
}

// NewDashboardService constructs DashboardService. metrics may be nil.
func NewDashboardService(programs programReader, progress progressRepository, metrics dashboardMetrics, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CreditsPerSemester <= 0 {
		cfg.CreditsPerSemester = kpi.DefaultCreditsPerSemester
	}
	return &DashboardService{
		programs: programs,
		progress: progress,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Summary computes the KPIs and chart series of the program as of today.
func (s *DashboardService) Summary(ctx context.Context, programID int64) (*dto.DashboardResponse, error) {
	program, err := loadProgram(ctx, s.programs, programID)
	if err != nil {
		return nil, err
	}

	var (
		agg         models.ProgressAggregates
		latest      []models.ModuleProgress
		completions []models.Completion
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer s.observe("progress_aggregates", time.Now())
		var err error
		agg, err = s.progress.Aggregates(gctx, programID)
		return err
	})
	group.Go(func() error {
		defer s.observe("latest_per_module", time.Now())
		var err error
		latest, err = s.progress.LatestPerModule(gctx, programID)
		return err
	})
	group.Go(func() error {
		defer s.observe("completions_chronological", time.Now())
		var err error
		completions, err = s.progress.CompletionsChronological(gctx, programID)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to load progress")
	}

	today := models.DateOf(s.now())
	start := time.Now()
	kpis := kpi.Compute(kpi.ContextFor(*program, s.cfg.CreditsPerSemester), agg, today)
	if s.metrics != nil {
		s.metrics.ObserveKPICompute(programID, kpis.CompletionFraction, time.Since(start))
	}

	s.logger.Debug("dashboard computed",
		zap.Int64("program_id", programID),
		zap.Int("completed_credits", kpis.CompletedCredits),
		zap.Int("target_credits", kpis.TargetCredits),
	)

	return &dto.DashboardResponse{
		ProgramID:          program.ID,
		ProgramName:        program.Name,
		StartDate:          program.StartDate,
		TargetAverageGrade: program.TargetAverageGrade,
		GeneratedOn:        today,
		KPIs:               kpis,
		Charts: dto.DashboardCharts{
			Grades:            kpi.GradeSeries(latest),
			Offsets:           kpi.OffsetSeries(latest),
			CumulativeCredits: kpi.CumulativeCredits(completions),
			CumulativeGrade:   kpi.CumulativeGrade(completions),
		},
	}, nil
}

// SummaryLines renders the textual KPI header of the program.
func (s *DashboardService) SummaryLines(ctx context.Context, programID int64) ([]export.SummaryLine, error) {
	summary, err := s.Summary(ctx, programID)
	if err != nil {
		return nil, err
	}
	return FormatSummary(summary), nil
}

func (s *DashboardService) observe(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

// FormatSummary turns a dashboard into labelled text lines. Absent values render as "-".
func FormatSummary(d *dto.DashboardResponse) []export.SummaryLine {
	k := d.KPIs
	average := "-"
	if k.WeightedAverageGrade.Valid {
		average = fmt.Sprintf("%.2f", k.WeightedAverageGrade.Float64)
	}
	return []export.SummaryLine{
		{Label: "Program", Value: d.ProgramName},
		{Label: "Progress (credits)", Value: fmt.Sprintf("%.1f%%", k.CompletionFraction*100)},
		{Label: "Average grade", Value: fmt.Sprintf("%s (target %.2f)", average, d.TargetAverageGrade)},
		{Label: "Actual duration", Value: fmt.Sprintf("%.2f years (delta to target %+.2f)", k.ActualDurationYears, k.DurationDeltaYears)},
		{Label: "Target end", Value: dateOrDash(k.TargetEndDate)},
		{Label: "Forecast end (pace)", Value: fmt.Sprintf("%s (delta to target %s)", dateOrDash(k.PaceForecastEndDate), signedDays(k.PaceForecastDeltaDays.Valid, k.PaceForecastDeltaDays.Int))},
		{Label: "Forecast end (plan)", Value: fmt.Sprintf("%s (delay so far %s)", dateOrDash(k.PlanForecastEndDate), signedDays(k.DelaySoFarDays.Valid, k.DelaySoFarDays.Int))},
		{Label: "Credits", Value: fmt.Sprintf("%d/%d", k.CompletedCredits, k.TargetCredits)},
		{Label: "Last completion", Value: dateOrDash(k.LastCompletionDate)},
	}
}

func signedDays(valid bool, days int) string {
	if !valid {
		return "-"
	}
	return fmt.Sprintf("%+d days", days)
}

func dateOrDash(d models.NullDate) string {
	if !d.Valid {
		return "-"
	}
	return d.String()
}
