package models

import "github.com/volatiletech/null/v8"

// ModuleProgress is the most recent enrollment of a program for one module.
type ModuleProgress struct {
	EnrollmentID int64        `db:"enrollment_id" json:"enrollment_id"`
	ModuleID     int64        `db:"module_id" json:"module_id"`
	Title        string       `db:"title" json:"title"`
	Credits      int          `db:"credits" json:"credits"`
	TargetDate   NullDate     `db:"target_date" json:"target_date"`
	ActualDate   NullDate     `db:"actual_date" json:"actual_date"`
	TargetGrade  null.Float64 `db:"target_grade" json:"target_grade"`
	ActualGrade  null.Float64 `db:"actual_grade" json:"actual_grade"`
	// OffsetDays is actual minus target completion date; positive means late.
	OffsetDays null.Int `db:"-" json:"offset_days"`
}

// Completion is one completed enrollment in chronological order.
type Completion struct {
	EnrollmentID int64        `db:"enrollment_id" json:"enrollment_id"`
	ActualDate   Date         `db:"actual_date" json:"actual_date"`
	Credits      int          `db:"credits" json:"credits"`
	ActualGrade  null.Float64 `db:"actual_grade" json:"actual_grade"`
}

// ProgressAggregates carries the scalar projections the KPI engine consumes.
type ProgressAggregates struct {
	CatalogCredits       int
	CompletedCredits     int
	WeightedAverageGrade null.Float64
	LastCompletionDate   NullDate
}
