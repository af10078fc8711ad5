package models

import "github.com/volatiletech/null/v8"

// Person is the student owning study programs.
type Person struct {
	ID                  int64       `db:"id" json:"id"`
	GivenName           string      `db:"given_name" json:"given_name" validate:"required"`
	FamilyName          string      `db:"family_name" json:"family_name" validate:"required"`
	MatriculationNumber string      `db:"matriculation_number" json:"matriculation_number" validate:"required"`
	BirthDate           NullDate    `db:"birth_date" json:"birth_date"`
	Address             null.String `db:"address" json:"address"`
}
