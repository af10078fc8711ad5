package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/noah-isme/studydash/internal/models"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
)

type enrollmentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListRecent(ctx context.Context, programID int64, limit int) ([]models.EnrollmentDetail, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

type programReader interface {
	FindByID(ctx context.Context, id int64) (*models.Program, error)
}

type moduleReader interface {
	FindByID(ctx context.Context, id int64) (*models.Module, error)
}

// EnrollmentRequest carries the editable fields of an enrollment. A zero
// planned semester or an absent target date is filled from the module.
type EnrollmentRequest struct {
	ModuleID        int64           `json:"module_id" validate:"gt=0"`
	PlannedSemester int             `json:"planned_semester"`
	ActualSemester  null.Int        `json:"actual_semester" swaggertype:"integer"`
	TargetDate      models.NullDate `json:"target_date" swaggertype:"string"`
	ActualDate      models.NullDate `json:"actual_date" swaggertype:"string"`
	TargetGrade     null.Float64    `json:"target_grade" swaggertype:"number"`
	ActualGrade     null.Float64    `json:"actual_grade" swaggertype:"number"`
	Attempts        int             `json:"attempts"`
}

// EnrollmentServiceConfig tunes listing behaviour.
type EnrollmentServiceConfig struct {
	ListLimit int
}

// EnrollmentService records module attempts of a program.
type EnrollmentService struct {
	repo      enrollmentRepository
	programs  programReader
	modules   moduleReader
	validator *validator.Validate
	logger    *zap.Logger
	cfg       EnrollmentServiceConfig
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, programs programReader, modules moduleReader, validate *validator.Validate, logger *zap.Logger, cfg EnrollmentServiceConfig) *EnrollmentService {
	if validate == nil {
		validate = models.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = models.DefaultEnrollmentListLimit
	}
	return &EnrollmentService{repo: repo, programs: programs, modules: modules, validator: validate, logger: logger, cfg: cfg}
}

// ListRecent returns the newest enrollments of the program, capped at limit.
// A non-positive limit uses the configured default.
func (s *EnrollmentService) ListRecent(ctx context.Context, programID int64, limit int) ([]models.EnrollmentDetail, error) {
	if err := s.ensureProgram(ctx, programID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.cfg.ListLimit {
		limit = s.cfg.ListLimit
	}
	rows, err := s.repo.ListRecent(ctx, programID, limit)
	if err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to list enrollments")
	}
	return rows, nil
}

// Get returns an enrollment of the program.
func (s *EnrollmentService) Get(ctx context.Context, programID, id int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.ErrInternal.With(err, "failed to load enrollment")
	}
	if enrollment.ProgramID != programID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return enrollment, nil
}

// Create records a new attempt of a module.
func (s *EnrollmentService) Create(ctx context.Context, programID int64, req EnrollmentRequest) (*models.Enrollment, error) {
	if err := s.ensureProgram(ctx, programID); err != nil {
		return nil, err
	}
	enrollment := &models.Enrollment{ProgramID: programID}
	if err := s.apply(ctx, enrollment, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to create enrollment")
	}
	s.logger.Debug("enrollment created",
		zap.Int64("program_id", programID),
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("module_id", enrollment.ModuleID),
	)
	return enrollment, nil
}

// Update replaces the editable fields of an enrollment.
func (s *EnrollmentService) Update(ctx context.Context, programID, id int64, req EnrollmentRequest) (*models.Enrollment, error) {
	enrollment, err := s.Get(ctx, programID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, enrollment, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, enrollment); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to update enrollment")
	}
	return enrollment, nil
}

// Delete removes an enrollment of the program.
func (s *EnrollmentService) Delete(ctx context.Context, programID, id int64) error {
	if _, err := s.Get(ctx, programID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.ErrInternal.With(err, "failed to delete enrollment")
	}
	return nil
}

func (s *EnrollmentService) apply(ctx context.Context, enrollment *models.Enrollment, req EnrollmentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.ErrValidation.With(err, "invalid enrollment payload")
	}
	module, err := s.modules.FindByID(ctx, req.ModuleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return appErrors.ErrInternal.With(err, "failed to load module")
	}

	enrollment.ModuleID = module.ID
	enrollment.PlannedSemester = req.PlannedSemester
	if enrollment.PlannedSemester == 0 {
		enrollment.PlannedSemester = module.PlannedSemester
	}
	enrollment.ActualSemester = req.ActualSemester
	enrollment.TargetDate = req.TargetDate
	if !enrollment.TargetDate.Valid {
		enrollment.TargetDate = module.DefaultTargetDate
	}
	enrollment.ActualDate = req.ActualDate
	enrollment.TargetGrade = req.TargetGrade
	enrollment.ActualGrade = req.ActualGrade
	enrollment.Attempts = req.Attempts
	if enrollment.Attempts == 0 {
		enrollment.Attempts = 1
	}

	if err := s.validator.Struct(enrollment); err != nil {
		return appErrors.ErrValidation.With(err, "invalid enrollment payload")
	}
	return nil
}

func (s *EnrollmentService) ensureProgram(ctx context.Context, programID int64) error {
	_, err := loadProgram(ctx, s.programs, programID)
	return err
}

func loadProgram(ctx context.Context, programs programReader, id int64) (*models.Program, error) {
	program, err := programs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.ErrInternal.With(err, "failed to load program")
	}
	return program, nil
}
