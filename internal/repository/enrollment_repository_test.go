package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/noah-isme/studydash/internal/models"
)

func TestEnrollmentRepositoryListRecent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "program_id", "module_id", "planned_semester", "actual_semester", "target_date", "actual_date", "target_grade", "actual_grade", "attempts", "module_title", "module_credits"}).
		AddRow(9, 1, 4, 2, 2, "2025-12-15", "2025-12-20", 2.0, 1.7, 1, "Statistik", 5).
		AddRow(8, 1, 3, 1, nil, nil, nil, nil, nil, 1, "Mathematik Grundlagen I", 5)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.program_id = ?\nORDER BY e.id DESC\nLIMIT ?")).
		WithArgs(int64(1), 200).
		WillReturnRows(rows)

	details, err := repo.ListRecent(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, int64(9), details[0].ID)
	assert.Equal(t, "Statistik", details[0].ModuleTitle)
	assert.Equal(t, null.Float64From(1.7), details[0].ActualGrade)
	assert.Equal(t, models.NewDate(2025, time.December, 20), details[0].ActualDate.Date)
	assert.False(t, details[1].ActualSemester.Valid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateUpdateDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	enrollment := &models.Enrollment{
		ProgramID:       1,
		ModuleID:        4,
		PlannedSemester: 2,
		TargetDate:      models.NullDateFrom(models.NewDate(2025, time.December, 15)),
		TargetGrade:     null.Float64From(2.0),
		Attempts:        1,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO enrollments")).
		WithArgs(int64(1), int64(4), int64(2), nil, "2025-12-15", nil, 2.0, nil, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(15))
	require.NoError(t, repo.Create(context.Background(), enrollment))
	assert.Equal(t, int64(15), enrollment.ID)

	enrollment.ActualDate = models.NullDateFrom(models.NewDate(2025, time.December, 19))
	enrollment.ActualGrade = null.Float64From(2.3)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET module_id = ?")).
		WithArgs(int64(4), int64(2), nil, "2025-12-15", "2025-12-19", 2.0, 2.3, int64(1), int64(15)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), enrollment))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE id = ?")).
		WithArgs(int64(15)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 15))

	require.NoError(t, mock.ExpectationsWereMet())
}
