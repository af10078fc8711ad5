package models

import "github.com/volatiletech/null/v8"

// DefaultEnrollmentListLimit caps the recent-enrollments table.
const DefaultEnrollmentListLimit = 200

// Enrollment binds a program to a module for one attempt cycle.
type Enrollment struct {
	ID              int64        `db:"id" json:"id"`
	ProgramID       int64        `db:"program_id" json:"program_id" validate:"gt=0"`
	ModuleID        int64        `db:"module_id" json:"module_id" validate:"gt=0"`
	PlannedSemester int          `db:"planned_semester" json:"planned_semester" validate:"gt=0"`
	ActualSemester  null.Int     `db:"actual_semester" json:"actual_semester" validate:"omitempty,gt=0"`
	TargetDate      NullDate     `db:"target_date" json:"target_date"`
	ActualDate      NullDate     `db:"actual_date" json:"actual_date"`
	TargetGrade     null.Float64 `db:"target_grade" json:"target_grade" validate:"omitempty,gte=1,lte=5"`
	ActualGrade     null.Float64 `db:"actual_grade" json:"actual_grade" validate:"omitempty,gte=1,lte=5"`
	Attempts        int          `db:"attempts" json:"attempts" validate:"gte=1"`
}

// EnrollmentDetail enriches an enrollment with catalog data for listings.
type EnrollmentDetail struct {
	Enrollment
	ModuleTitle   string `db:"module_title" json:"module_title"`
	ModuleCredits int    `db:"module_credits" json:"module_credits"`
}
