package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studydash/internal/models"
)

func TestModuleRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "credits", "planned_semester", "default_target_date"}).
		AddRow(1, "Mathematik Grundlagen I", 5, 1, "2025-09-30").
		AddRow(2, "Einführung in die Programmierung mit Python", 5, 1, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, credits, planned_semester, default_target_date FROM modules ORDER BY id ASC")).
		WillReturnRows(rows)

	modules, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.True(t, modules[0].DefaultTargetDate.Valid)
	assert.False(t, modules[1].DefaultTargetDate.Valid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryExistsByTitle(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM modules WHERE title = ? AND id <> ? LIMIT 1")).
		WithArgs("Statistik", int64(3)).
		WillReturnError(sql.ErrNoRows)
	exists, err := repo.ExistsByTitle(context.Background(), "Statistik", 3)
	require.NoError(t, err)
	assert.False(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM modules WHERE title = ? LIMIT 1")).
		WithArgs("Statistik").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	exists, err = repo.ExistsByTitle(context.Background(), "Statistik", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryCreateAndCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO modules (title, credits, planned_semester, default_target_date) VALUES (?, ?, ?, ?) RETURNING id")).
		WithArgs("Statistik", int64(5), int64(2), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	module := &models.Module{Title: "Statistik", Credits: 5, PlannedSemester: 2}
	require.NoError(t, repo.Create(context.Background(), module))
	assert.Equal(t, int64(8), module.ID)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments WHERE module_id = ?")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	count, err := repo.CountEnrollments(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, mock.ExpectationsWereMet())
}
