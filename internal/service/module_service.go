package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studydash/internal/models"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
)

type moduleRepository interface {
	List(ctx context.Context) ([]models.Module, error)
	FindByID(ctx context.Context, id int64) (*models.Module, error)
	ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error)
	Create(ctx context.Context, module *models.Module) error
	Update(ctx context.Context, module *models.Module) error
	Delete(ctx context.Context, id int64) error
	CountEnrollments(ctx context.Context, id int64) (int, error)
}

// ModuleRequest captures the fields of a catalog module.
type ModuleRequest struct {
	Title             string          `json:"title" validate:"required"`
	Credits           int             `json:"credits" validate:"gt=0"`
	PlannedSemester   int             `json:"planned_semester" validate:"gt=0"`
	DefaultTargetDate models.NullDate `json:"default_target_date" swaggertype:"string"`
}

// ModuleService manages the module catalog.
type ModuleService struct {
	repo      moduleRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewModuleService creates a module service.
func NewModuleService(repo moduleRepository, validate *validator.Validate, logger *zap.Logger) *ModuleService {
	if validate == nil {
		validate = models.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModuleService{repo: repo, validator: validate, logger: logger}
}

// List returns the catalog ordered by id.
func (s *ModuleService) List(ctx context.Context) ([]models.Module, error) {
	modules, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to list modules")
	}
	return modules, nil
}

// Get returns a module by identifier.
func (s *ModuleService) Get(ctx context.Context, id int64) (*models.Module, error) {
	module, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return nil, appErrors.ErrInternal.With(err, "failed to load module")
	}
	return module, nil
}

// Create adds a catalog module with a unique title.
func (s *ModuleService) Create(ctx context.Context, req ModuleRequest) (*models.Module, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.With(err, "invalid module payload")
	}
	if err := s.ensureUniqueTitle(ctx, req.Title, 0); err != nil {
		return nil, err
	}

	module := &models.Module{
		Title:             req.Title,
		Credits:           req.Credits,
		PlannedSemester:   req.PlannedSemester,
		DefaultTargetDate: req.DefaultTargetDate,
	}
	if err := s.repo.Create(ctx, module); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to create module")
	}
	return module, nil
}

// Update modifies an existing module.
func (s *ModuleService) Update(ctx context.Context, id int64, req ModuleRequest) (*models.Module, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.With(err, "invalid module payload")
	}

	module, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueTitle(ctx, req.Title, id); err != nil {
		return nil, err
	}

	module.Title = req.Title
	module.Credits = req.Credits
	module.PlannedSemester = req.PlannedSemester
	module.DefaultTargetDate = req.DefaultTargetDate

	if err := s.repo.Update(ctx, module); err != nil {
		return nil, appErrors.ErrInternal.With(err, "failed to update module")
	}
	return module, nil
}

// Delete removes a module no enrollment refers to.
func (s *ModuleService) Delete(ctx context.Context, id int64) error {
	module, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountEnrollments(ctx, module.ID)
	if err != nil {
		return appErrors.ErrInternal.With(err, "failed to check module dependencies")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "module referenced by enrollments")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.ErrInternal.With(err, "failed to delete module")
	}
	return nil
}

func (s *ModuleService) ensureUniqueTitle(ctx context.Context, title string, excludeID int64) error {
	exists, err := s.repo.ExistsByTitle(ctx, title, excludeID)
	if err != nil {
		return appErrors.ErrInternal.With(err, "failed to check module title")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "module title already exists")
	}
	return nil
}
