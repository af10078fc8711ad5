package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studydash/internal/models"
)

const moduleColumns = `id, title, credits, planned_semester, default_target_date`

// ModuleRepository handles persistence for the module catalog.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository creates a new repository instance.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// List returns the whole catalog ordered by id.
func (r *ModuleRepository) List(ctx context.Context) ([]models.Module, error) {
	modules := []models.Module{}
	if err := r.db.SelectContext(ctx, &modules, `SELECT `+moduleColumns+` FROM modules ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// FindByID returns a module by id.
func (r *ModuleRepository) FindByID(ctx context.Context, id int64) (*models.Module, error) {
	query := r.db.Rebind(`SELECT ` + moduleColumns + ` FROM modules WHERE id = ?`)
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		return nil, err
	}
	return &module, nil
}

// FindByTitle returns a module by its unique title.
func (r *ModuleRepository) FindByTitle(ctx context.Context, title string) (*models.Module, error) {
	query := r.db.Rebind(`SELECT ` + moduleColumns + ` FROM modules WHERE title = ?`)
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, title); err != nil {
		return nil, err
	}
	return &module, nil
}

// ExistsByTitle checks title uniqueness, ignoring excludeID when it is positive.
func (r *ModuleRepository) ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM modules WHERE title = ?"
	args := []interface{}{title}
	if excludeID > 0 {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(query+" LIMIT 1"), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check module title: %w", err)
	}
	return true, nil
}

// Create persists a new module and assigns its id.
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	const query = `INSERT INTO modules (title, credits, planned_semester, default_target_date) VALUES (:title, :credits, :planned_semester, :default_target_date) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, module)
	if err != nil {
		return fmt.Errorf("create module: %w", err)
	}
	module.ID = id
	return nil
}

// Update modifies a module.
func (r *ModuleRepository) Update(ctx context.Context, module *models.Module) error {
	const query = `UPDATE modules SET title = :title, credits = :credits, planned_semester = :planned_semester, default_target_date = :default_target_date WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, module); err != nil {
		return fmt.Errorf("update module: %w", err)
	}
	return nil
}

// Delete removes a module record.
func (r *ModuleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM modules WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	return nil
}

// CountEnrollments returns the number of enrollments referencing the module.
func (r *ModuleRepository) CountEnrollments(ctx context.Context, id int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM enrollments WHERE module_id = ?`), id); err != nil {
		return 0, fmt.Errorf("count module enrollments: %w", err)
	}
	return count, nil
}
