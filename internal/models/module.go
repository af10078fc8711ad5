package models

// Module is a catalog course definition. Modules are shared reference data.
type Module struct {
	ID                int64    `db:"id" json:"id"`
	Title             string   `db:"title" json:"title" validate:"required"`
	Credits           int      `db:"credits" json:"credits" validate:"gt=0"`
	PlannedSemester   int      `db:"planned_semester" json:"planned_semester" validate:"gt=0"`
	DefaultTargetDate NullDate `db:"default_target_date" json:"default_target_date"`
}
