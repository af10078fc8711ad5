package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/noah-isme/studydash/internal/dto"
	"github.com/noah-isme/studydash/internal/kpi"
	"github.com/noah-isme/studydash/internal/models"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
	"github.com/noah-isme/studydash/pkg/export"
)

func newDashboardFixture(t *testing.T, progress *stubProgress) (*DashboardService, *models.Program, *recordingMetrics) {
	t.Helper()
	programs := &mockProgramRepo{}
	program := &models.Program{
		PersonID:           1,
		Name:               "Angewandte Kuenstliche Intelligenz",
		StartDate:          models.NewDate(2025, time.June, 1),
		TargetSemesters:    null.IntFrom(6),
		TargetAverageGrade: 2.0,
	}
	require.NoError(t, programs.Create(context.Background(), program))

	metrics := &recordingMetrics{}
	svc := NewDashboardService(programs, progress, metrics, DashboardServiceConfig{}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, time.June, 1, 15, 30, 0, 0, time.UTC) }
	return svc, program, metrics
}

func TestDashboardServiceSummary(t *testing.T) {
	day := models.NewDate(2025, time.December, 1)
	progress := &stubProgress{
		agg: models.ProgressAggregates{
			CatalogCredits:       100,
			CompletedCredits:     30,
			WeightedAverageGrade: null.Float64From(1.85),
			LastCompletionDate:   models.NullDateFrom(day),
		},
		latest: []models.ModuleProgress{
			{EnrollmentID: 1, ModuleID: 1, Title: "Mathematik", Credits: 5, TargetDate: models.NullDateFrom(day.AddDays(-2)), ActualDate: models.NullDateFrom(day), ActualGrade: null.Float64From(1.7), OffsetDays: null.IntFrom(2)},
			{EnrollmentID: 3, ModuleID: 2, Title: "Statistik", Credits: 5},
		},
		completions: []models.Completion{
			{EnrollmentID: 1, ActualDate: day, Credits: 5, ActualGrade: null.Float64From(1.7)},
		},
	}
	svc, program, metrics := newDashboardFixture(t, progress)

	summary, err := svc.Summary(context.Background(), program.ID)
	require.NoError(t, err)

	assert.Equal(t, program.Name, summary.ProgramName)
	assert.Equal(t, models.NewDate(2026, time.June, 1), summary.GeneratedOn)
	assert.Equal(t, 180, summary.KPIs.TargetCredits)
	assert.Equal(t, 30, summary.KPIs.CompletedCredits)
	assert.Equal(t, models.NullDateFrom(models.NewDate(2028, time.June, 1)), summary.KPIs.TargetEndDate)
	assert.Equal(t, models.NewDate(2026, time.June, 1), summary.KPIs.ReferenceDate)
	assert.Len(t, summary.Charts.Grades, 2)
	assert.Len(t, summary.Charts.Offsets, 1)
	assert.Len(t, summary.Charts.CumulativeCredits, 1)
	assert.Len(t, summary.Charts.CumulativeGrade, 1)

	assert.Equal(t, 1, metrics.computed)
	assert.InDelta(t, 30.0/180.0, metrics.completion, 1e-9)
	assert.ElementsMatch(t, []string{"progress_aggregates", "latest_per_module", "completions_chronological"}, metrics.queries)
}

func TestDashboardServiceSummaryIsLive(t *testing.T) {
	progress := &stubProgress{agg: models.ProgressAggregates{CatalogCredits: 180}}
	svc, program, _ := newDashboardFixture(t, progress)
	ctx := context.Background()

	before, err := svc.Summary(ctx, program.ID)
	require.NoError(t, err)
	assert.Zero(t, before.KPIs.CompletedCredits)

	progress.agg.CompletedCredits = 10
	after, err := svc.Summary(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.KPIs.CompletedCredits)
}

func TestDashboardServiceSummaryErrors(t *testing.T) {
	progress := &stubProgress{err: errors.New("disk I/O error")}
	svc, program, metrics := newDashboardFixture(t, progress)

	_, err := svc.Summary(context.Background(), 99)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Summary(context.Background(), program.ID)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Zero(t, metrics.computed)
}

func TestFormatSummary(t *testing.T) {
	d := &dto.DashboardResponse{
		ProgramName:        "AKI",
		TargetAverageGrade: 2.0,
		KPIs: kpi.DashboardKPIs{
			TargetCredits:         180,
			CompletedCredits:      45,
			CompletionFraction:    0.25,
			ActualDurationYears:   1.5,
			DurationDeltaYears:    -1.5,
			TargetEndDate:         models.NullDateFrom(models.NewDate(2028, time.June, 1)),
			PlanForecastEndDate:   models.NullDateFrom(models.NewDate(2028, time.August, 10)),
			PlanForecastDeltaDays: null.IntFrom(70),
			DelaySoFarDays:        null.IntFrom(70),
		},
	}

	lines := FormatSummary(d)
	byLabel := map[string]string{}
	for _, line := range lines {
		byLabel[line.Label] = line.Value
	}

	assert.Equal(t, export.SummaryLine{Label: "Program", Value: "AKI"}, lines[0])
	assert.Equal(t, "25.0%", byLabel["Progress (credits)"])
	assert.Equal(t, "- (target 2.00)", byLabel["Average grade"])
	assert.Equal(t, "1.50 years (delta to target -1.50)", byLabel["Actual duration"])
	assert.Equal(t, "2028-06-01", byLabel["Target end"])
	assert.Equal(t, "- (delta to target -)", byLabel["Forecast end (pace)"])
	assert.Equal(t, "2028-08-10 (delay so far +70 days)", byLabel["Forecast end (plan)"])
	assert.Equal(t, "45/180", byLabel["Credits"])
	assert.Equal(t, "-", byLabel["Last completion"])
}
