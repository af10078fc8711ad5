package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/studydash/internal/models"
	"github.com/noah-isme/studydash/internal/repository"
	"github.com/noah-isme/studydash/internal/service"
	"github.com/noah-isme/studydash/pkg/config"
	"github.com/noah-isme/studydash/pkg/database"
	"github.com/noah-isme/studydash/pkg/logger"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *sqlx.DB
	metrics *service.MetricsService

	programs    *service.ProgramService
	modules     *service.ModuleService
	enrollments *service.EnrollmentService
	dashboard   *service.DashboardService
	exports     *service.ExportService

	// program is the active program of the bootstrap person.
	program *models.Program
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db, cfg.Database.Reset); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if cfg.Database.Reset {
		logr.Warn("database reset", zap.String("driver", cfg.Database.Driver))
	}

	start, err := models.ParseDate(cfg.Demo.ProgramStart)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("demo program start: %w", err)
	}

	validate := models.NewValidator()
	metrics := service.NewMetricsService()

	persons := repository.NewPersonRepository(db)
	programRepo := repository.NewProgramRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	a := &app{cfg: cfg, log: logr, db: db, metrics: metrics}
	a.programs = service.NewProgramService(persons, programRepo, validate, logr)
	a.modules = service.NewModuleService(moduleRepo, validate, logr)
	a.enrollments = service.NewEnrollmentService(enrollmentRepo, programRepo, moduleRepo, validate, logr, service.EnrollmentServiceConfig{
		ListLimit: cfg.Dashboard.EnrollmentListLimit,
	})
	a.dashboard = service.NewDashboardService(programRepo, progressRepo, metrics, service.DashboardServiceConfig{
		CreditsPerSemester: cfg.Dashboard.CreditsPerSemester,
	}, logr)
	a.exports = service.NewExportService(a.dashboard, a.enrollments, metrics, logr, nil, nil)

	a.program, err = a.programs.EnsureDemoData(ctx, service.DemoProfile{
		GivenName:           cfg.Demo.GivenName,
		FamilyName:          cfg.Demo.FamilyName,
		MatriculationNumber: cfg.Demo.MatriculationNumber,
		ProgramName:         cfg.Demo.ProgramName,
		ProgramStart:        start,
		TargetSemesters:     cfg.Demo.TargetSemesters,
		TargetAverageGrade:  cfg.Demo.TargetAverageGrade,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("bootstrap demo data: %w", err)
	}
	logr.Info("program ready", zap.Int64("program_id", a.program.ID), zap.String("name", a.program.Name))
	return a, nil
}

// programID returns the requested program or the bootstrap one when zero.
func (a *app) programID(requested int64) int64 {
	if requested > 0 {
		return requested
	}
	return a.program.ID
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	_ = a.log.Sync()
}
