package models

import "github.com/volatiletech/null/v8"

// DefaultTargetAverageGrade applies when a program is created without a target grade.
const DefaultTargetAverageGrade = 2.0

// Program is a study program definition the dashboard is computed against.
type Program struct {
	ID                  int64        `db:"id" json:"id"`
	PersonID            int64        `db:"person_id" json:"person_id" validate:"gt=0"`
	Name                string       `db:"name" json:"name" validate:"required"`
	StartDate           Date         `db:"start_date" json:"start_date" validate:"required"`
	TargetSemesters     null.Int     `db:"target_semesters" json:"target_semesters" validate:"omitempty,gte=1"`
	TargetDurationYears null.Float64 `db:"target_duration_years" json:"target_duration_years" validate:"omitempty,gt=0"`
	TargetAverageGrade  float64      `db:"target_average_grade" json:"target_average_grade" validate:"gte=1,lte=5"`
}
