package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/noah-isme/studydash/internal/kpi"
	"github.com/noah-isme/studydash/internal/models"
)

// ProgressRepository exposes the read-only aggregate projections used by the dashboard.
// Every query is scoped by program id except the catalog total.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// SumCompletedCredits sums module credits over enrollments with an actual completion date.
func (r *ProgressRepository) SumCompletedCredits(ctx context.Context, programID int64) (int, error) {
	query := r.db.Rebind(`SELECT COALESCE(SUM(m.credits), 0)
FROM enrollments e
JOIN modules m ON m.id = e.module_id
WHERE e.program_id = ? AND e.actual_date IS NOT NULL`)
	var total int
	if err := r.db.GetContext(ctx, &total, query, programID); err != nil {
		return 0, fmt.Errorf("sum completed credits: %w", err)
	}
	return total, nil
}

type gradeSums struct {
	WeightedSum   float64 `db:"weighted_sum"`
	GradedCredits float64 `db:"graded_credits"`
}

// WeightedAverageGrade is the credit-weighted mean of actual grades, absent without graded enrollments.
func (r *ProgressRepository) WeightedAverageGrade(ctx context.Context, programID int64) (null.Float64, error) {
	query := r.db.Rebind(`SELECT COALESCE(SUM(m.credits * e.actual_grade), 0) AS weighted_sum, COALESCE(SUM(m.credits), 0) AS graded_credits
FROM enrollments e
JOIN modules m ON m.id = e.module_id
WHERE e.program_id = ? AND e.actual_grade IS NOT NULL`)
	var sums gradeSums
	if err := r.db.GetContext(ctx, &sums, query, programID); err != nil {
		return null.Float64{}, fmt.Errorf("weighted average grade: %w", err)
	}
	if sums.GradedCredits <= 0 {
		return null.Float64{}, nil
	}
	return null.Float64From(sums.WeightedSum / sums.GradedCredits), nil
}

// LastCompletionDate returns the latest actual completion date.
func (r *ProgressRepository) LastCompletionDate(ctx context.Context, programID int64) (models.NullDate, error) {
	query := r.db.Rebind(`SELECT MAX(actual_date) FROM enrollments WHERE program_id = ? AND actual_date IS NOT NULL`)
	var last models.NullDate
	if err := r.db.GetContext(ctx, &last, query, programID); err != nil {
		return models.NullDate{}, fmt.Errorf("last completion date: %w", err)
	}
	return last, nil
}

// TotalCatalogCredits sums the credits of every catalog module.
func (r *ProgressRepository) TotalCatalogCredits(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(credits), 0) FROM modules`); err != nil {
		return 0, fmt.Errorf("total catalog credits: %w", err)
	}
	return total, nil
}

// Aggregates loads the scalar projections in one call.
func (r *ProgressRepository) Aggregates(ctx context.Context, programID int64) (models.ProgressAggregates, error) {
	var (
		agg models.ProgressAggregates
		err error
	)
	if agg.CatalogCredits, err = r.TotalCatalogCredits(ctx); err != nil {
		return agg, err
	}
	if agg.CompletedCredits, err = r.SumCompletedCredits(ctx, programID); err != nil {
		return agg, err
	}
	if agg.WeightedAverageGrade, err = r.WeightedAverageGrade(ctx, programID); err != nil {
		return agg, err
	}
	if agg.LastCompletionDate, err = r.LastCompletionDate(ctx, programID); err != nil {
		return agg, err
	}
	return agg, nil
}

// LatestPerModule returns, per module the program enrolled in, the enrollment with the highest id.
func (r *ProgressRepository) LatestPerModule(ctx context.Context, programID int64) ([]models.ModuleProgress, error) {
	query := r.db.Rebind(`WITH latest AS (
    SELECT module_id, MAX(id) AS enrollment_id
    FROM enrollments
    WHERE program_id = ?
    GROUP BY module_id
)
SELECT e.id AS enrollment_id, m.id AS module_id, m.title, m.credits, e.target_date, e.actual_date, e.target_grade, e.actual_grade
FROM latest l
JOIN enrollments e ON e.id = l.enrollment_id
JOIN modules m ON m.id = e.module_id
ORDER BY m.id ASC`)
	rows := []models.ModuleProgress{}
	if err := r.db.SelectContext(ctx, &rows, query, programID); err != nil {
		return nil, fmt.Errorf("latest enrollment per module: %w", err)
	}
	for i := range rows {
		rows[i].OffsetDays = kpi.OffsetDays(rows[i].TargetDate, rows[i].ActualDate)
	}
	return rows, nil
}

// CompletionsChronological lists completed enrollments by completion date, ties broken by id.
func (r *ProgressRepository) CompletionsChronological(ctx context.Context, programID int64) ([]models.Completion, error) {
	query := r.db.Rebind(`SELECT e.id AS enrollment_id, e.actual_date, m.credits, e.actual_grade
FROM enrollments e
JOIN modules m ON m.id = e.module_id
WHERE e.program_id = ? AND e.actual_date IS NOT NULL
ORDER BY e.actual_date ASC, e.id ASC`)
	completions := []models.Completion{}
	if err := r.db.SelectContext(ctx, &completions, query, programID); err != nil {
		return nil, fmt.Errorf("completions chronological: %w", err)
	}
	return completions, nil
}
