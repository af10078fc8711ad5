package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/studydash/internal/middleware"
	"github.com/noah-isme/studydash/internal/service"
	"github.com/noah-isme/studydash/pkg/logger"
	corsmiddleware "github.com/noah-isme/studydash/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studydash/pkg/middleware/requestid"
)

// Handlers bundles the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Metrics     *MetricsHandler
	Programs    *ProgramHandler
	Modules     *ModuleHandler
	Enrollments *EnrollmentHandler
	Dashboard   *DashboardHandler
	Export      *ExportHandler
}

// RouterConfig controls the middleware chain.
type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(cfg.Logger))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	programs := api.Group("/programs")
	programs.GET("/active", h.Programs.Active)
	programs.GET("/:programId", h.Programs.Get)
	programs.PUT("/:programId", h.Programs.Update)
	programs.DELETE("/:programId", h.Programs.Delete)
	programs.GET("/:programId/person", h.Programs.Person)
	programs.PUT("/:programId/person", h.Programs.UpdatePerson)

	programs.GET("/:programId/enrollments", h.Enrollments.List)
	programs.POST("/:programId/enrollments", h.Enrollments.Create)
	programs.GET("/:programId/enrollments/:id", h.Enrollments.Get)
	programs.PUT("/:programId/enrollments/:id", h.Enrollments.Update)
	programs.DELETE("/:programId/enrollments/:id", h.Enrollments.Delete)

	programs.GET("/:programId/dashboard", h.Dashboard.Summary)
	programs.GET("/:programId/export", h.Export.Download)

	modules := api.Group("/modules")
	modules.GET("", h.Modules.List)
	modules.POST("", h.Modules.Create)
	modules.GET("/:id", h.Modules.Get)
	modules.PUT("/:id", h.Modules.Update)
	modules.DELETE("/:id", h.Modules.Delete)

	return r
}
