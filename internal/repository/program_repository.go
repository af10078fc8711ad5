package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studydash/internal/models"
)

const programColumns = `id, person_id, name, start_date, target_semesters, target_duration_years, target_average_grade`

// ProgramRepository handles persistence for study programs.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository creates a new repository instance.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// FindByID returns a program by id.
func (r *ProgramRepository) FindByID(ctx context.Context, id int64) (*models.Program, error) {
	query := r.db.Rebind(`SELECT ` + programColumns + ` FROM programs WHERE id = ?`)
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, err
	}
	return &program, nil
}

// LatestForPerson returns the most recently created program of a person.
func (r *ProgramRepository) LatestForPerson(ctx context.Context, personID int64) (*models.Program, error) {
	query := r.db.Rebind(`SELECT ` + programColumns + ` FROM programs WHERE person_id = ? ORDER BY id DESC LIMIT 1`)
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, personID); err != nil {
		return nil, err
	}
	return &program, nil
}

// Create persists a new program and assigns its id.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	const query = `INSERT INTO programs (person_id, name, start_date, target_semesters, target_duration_years, target_average_grade) VALUES (:person_id, :name, :start_date, :target_semesters, :target_duration_years, :target_average_grade) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, program)
	if err != nil {
		return fmt.Errorf("create program: %w", err)
	}
	program.ID = id
	return nil
}

// Update modifies a program definition.
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	const query = `UPDATE programs SET name = :name, start_date = :start_date, target_semesters = :target_semesters, target_duration_years = :target_duration_years, target_average_grade = :target_average_grade WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, program); err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	return nil
}

// Delete removes a program; its enrollments are removed by the cascade.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM programs WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return nil
}
