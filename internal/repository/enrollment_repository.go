package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studydash/internal/models"
)

const enrollmentColumns = `id, program_id, module_id, planned_semester, actual_semester, target_date, actual_date, target_grade, actual_grade, attempts`

// EnrollmentRepository handles persistence for module enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new repository instance.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByID returns an enrollment by id.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := r.db.Rebind(`SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = ?`)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListRecent returns the newest enrollments of a program joined with module data.
func (r *EnrollmentRepository) ListRecent(ctx context.Context, programID int64, limit int) ([]models.EnrollmentDetail, error) {
	if limit <= 0 {
		limit = models.DefaultEnrollmentListLimit
	}
	query := r.db.Rebind(`SELECT e.id, e.program_id, e.module_id, e.planned_semester, e.actual_semester, e.target_date, e.actual_date, e.target_grade, e.actual_grade, e.attempts, m.title AS module_title, m.credits AS module_credits
FROM enrollments e
JOIN modules m ON m.id = e.module_id
WHERE e.program_id = ?
ORDER BY e.id DESC
LIMIT ?`)
	details := []models.EnrollmentDetail{}
	if err := r.db.SelectContext(ctx, &details, query, programID, limit); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return details, nil
}

// Create persists a new enrollment and assigns its id.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (program_id, module_id, planned_semester, actual_semester, target_date, actual_date, target_grade, actual_grade, attempts) VALUES (:program_id, :module_id, :planned_semester, :actual_semester, :target_date, :actual_date, :target_grade, :actual_grade, :attempts) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, enrollment)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	enrollment.ID = id
	return nil
}

// Update modifies an enrollment. The owning program never changes.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `UPDATE enrollments SET module_id = :module_id, planned_semester = :planned_semester, actual_semester = :actual_semester, target_date = :target_date, actual_date = :actual_date, target_grade = :target_grade, actual_grade = :actual_grade, attempts = :attempts WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return nil
}

// Delete removes an enrollment record.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM enrollments WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}
