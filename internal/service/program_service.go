package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/noah-isme/studydash/internal/models"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
)

type personRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Person, error)
	FindByMatriculation(ctx context.Context, number string) (*models.Person, error)
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
}

type programRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Program, error)
	LatestForPerson(ctx context.Context, personID int64) (*models.Program, error)
	Create(ctx context.Context, program *models.Program) error
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id int64) error
}

// DemoProfile describes the person and program created on first start.
type DemoProfile struct {
	GivenName           string
	FamilyName          string
	MatriculationNumber string
	ProgramName         string
	ProgramStart        models.Date
	TargetSemesters     int
	TargetAverageGrade  float64
}

// UpdateProgramRequest carries the editable program fields.
type UpdateProgramRequest struct {
	Name                string       `json:"name" validate:"required"`
	StartDate           models.Date  `json:"start_date" validate:"required"`
	TargetSemesters     null.Int     `json:"target_semesters" swaggertype:"integer"`
	TargetDurationYears null.Float64 `json:"target_duration_years" swaggertype:"number"`
	TargetAverageGrade  float64      `json:"target_average_grade"`
}

// UpdatePersonRequest carries the editable person fields.
type UpdatePersonRequest struct {
	GivenName           string          `json:"given_name"`
	FamilyName          string          `json:"family_name"`
	MatriculationNumber string          `json:"matriculation_number" validate:"required"`
	BirthDate           models.NullDate `json:"birth_date" swaggertype:"string"`
	Address             null.String     `json:"address" swaggertype:"string"`
}

// ProgramService bootstraps and edits the study program.
type ProgramService struct {
	persons   personRepository
	programs  programRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgramService creates a program service.
func NewProgramService(persons personRepository, programs programRepository, validate *validator.Validate, logger *zap.Logger) *ProgramService {
	if validate == nil {
		validate = models.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{persons: persons, programs: programs, validator: validate, logger: logger}
}

// EnsureDemoData finds or creates the demo person and returns its most recent
// program, creating the demo program when the person has none.
func (s *ProgramService) EnsureDemoData(ctx context.Context, profile DemoProfile) (*models.Program, error) {
	person, err := s.persons.FindByMatriculation(ctx, profile.MatriculationNumber)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		person = &models.Person{
			GivenName:           profile.GivenName,
			FamilyName:          profile.FamilyName,
			MatriculationNumber: profile.MatriculationNumber,
		}
		if err := s.validator.Struct(person); err != nil {
			return nil, appErrors.ErrValidation.With(err, "invalid demo person")
		}
		if err := s.persons.Create(ctx, person); err != nil {
			return nil, appErrors.ErrInternal.With(err, "failed to create demo person")
		}
		s.logger.Info("demo person created", zap.Int64("person_id", person.ID))
	case err != nil:
		return nil, appErrors.ErrInternal.With(err, "failed to load demo person")
	}

	program, err := s.programs.LatestForPerson(ctx, person.ID)
	if err == nil {
		return program, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.ErrInternal.With(err, "failed to load program")
	}

	program = &models.Program{
		PersonID:           person.ID,
		Name:               profile.ProgramName,
		StartDate:          profile.ProgramStart,
		TargetAverageGrade: profile.TargetAverageGrade,
	}
	if profile.TargetSemesters > 0 {
		program.TargetSemesters = null.IntFrom(profile.TargetSemesters)
	}
	if program.TargetAverageGrade == 0 {
		program.TargetAverageGrade = models.DefaultTargetAverageGrade
	}
	if err := s.validator.Struct(program); err != nil {
		return nil, appErrors.ErrValidation.With(err, "invalid demo program")
	}
	if err := s.programs.Create(ctx, program); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to create demo program")
	}
	s.logger.Info("demo program created", zap.Int64("program_id", program.ID), zap.Int64("person_id", person.ID))
	return program, nil
}

// Active returns the most recent program of the person.
func (s *ProgramService) Active(ctx context.Context, personID int64) (*models.Program, error) {
	program, err := s.programs.LatestForPerson(ctx, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active program")
		}
		return nil, appErrors.ErrInternal.With(err, "failed to load program")
	}
	return program, nil
}

// Get returns a program by identifier.
func (s *ProgramService) Get(ctx context.Context, id int64) (*models.Program, error) {
	return loadProgram(ctx, s.programs, id)
}

// Update changes the program targets and start date.
func (s *ProgramService) Update(ctx context.Context, id int64, req UpdateProgramRequest) (*models.Program, error) {
	program, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	program.Name = strings.TrimSpace(req.Name)
	program.StartDate = req.StartDate
	program.TargetSemesters = req.TargetSemesters
	program.TargetDurationYears = req.TargetDurationYears
	program.TargetAverageGrade = req.TargetAverageGrade
	if program.TargetAverageGrade == 0 {
		program.TargetAverageGrade = models.DefaultTargetAverageGrade
	}

	if err := s.validator.Struct(program); err != nil {
		return nil, appErrors.ErrValidation.With(err, "invalid program payload")
	}
	if err := s.programs.Update(ctx, program); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to update program")
	}
	return program, nil
}

// Delete removes the program together with its enrollments.
func (s *ProgramService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.programs.Delete(ctx, id); err != nil {
		return appErrors.ErrInternal.With(err, "failed to delete program")
	}
	s.logger.Info("program deleted", zap.Int64("program_id", id))
	return nil
}

// Person returns the person owning the program.
func (s *ProgramService) Person(ctx context.Context, programID int64) (*models.Person, error) {
	program, err := s.Get(ctx, programID)
	if err != nil {
		return nil, err
	}
	person, err := s.persons.FindByID(ctx, program.PersonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
		}
		return nil, appErrors.ErrInternal.With(err, "failed to load person")
	}
	return person, nil
}

// UpdatePerson edits the personal data of the program owner.
func (s *ProgramService) UpdatePerson(ctx context.Context, programID int64, req UpdatePersonRequest) (*models.Person, error) {
	person, err := s.Person(ctx, programID)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.MatriculationNumber)
	if number != person.MatriculationNumber {
		other, err := s.persons.FindByMatriculation(ctx, number)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInternal.With(err, "failed to check matriculation number")
		}
		if other != nil && other.ID != person.ID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "matriculation number already exists")
		}
	}

	person.GivenName = strings.TrimSpace(req.GivenName)
	person.FamilyName = strings.TrimSpace(req.FamilyName)
	person.MatriculationNumber = number
	person.BirthDate = req.BirthDate
	person.Address = req.Address

	if err := s.validator.Struct(person); err != nil {
		return nil, appErrors.ErrValidation.With(err, "invalid person payload")
	}
	if err := s.persons.Update(ctx, person); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to update person")
	}
	return person, nil
}
