// Package app is the composition root: it builds every repository, use-case
// and handler pairing once at process start and mounts them on a gin engine.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-enrollment-api/api/swagger"
	"github.com/noah-isme/school-enrollment-api/internal/handler"
	"github.com/noah-isme/school-enrollment-api/internal/middleware"
	"github.com/noah-isme/school-enrollment-api/internal/models"
	"github.com/noah-isme/school-enrollment-api/internal/repository"
	"github.com/noah-isme/school-enrollment-api/internal/service"
	"github.com/noah-isme/school-enrollment-api/pkg/config"
	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
	"github.com/noah-isme/school-enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-enrollment-api/pkg/middleware/requestid"
	"github.com/noah-isme/school-enrollment-api/pkg/response"
)

// Dependencies are the process-wide resources the application is built on.
// Redis may be nil when caching is disabled.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
}

// App holds the HTTP router and the resources that must be released on shutdown.
type App struct {
	Router  *gin.Engine
	Metrics *service.MetricsService

	limiter *middleware.RateLimiter
}

// New wires repositories, use-cases and handlers and registers all routes.
func New(deps Dependencies) *App {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}
	validate := validator.New()

	metrics := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(deps.Redis, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, cfg.Catalog.CacheEnabled && cacheRepo.Enabled())

	studentRepo := service.NewSectionCacheInvalidator(repository.NewStudentRepository(deps.DB), cacheSvc)
	gradeRepo := service.NewCachedGradeRepository(repository.NewGradeRepository(deps.DB), cacheSvc, cfg.Catalog.CacheTTL)
	sectionRepo := service.NewCachedSectionRepository(repository.NewSectionRepository(deps.DB), cacheSvc, cfg.Catalog.CacheTTL)
	levelRepo := service.NewCachedLevelRepository(repository.NewLevelRepository(deps.DB), cacheSvc, cfg.Catalog.CacheTTL)
	userRepo := repository.NewUserRepository(deps.DB)

	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	rosterSvc := service.NewRosterService(studentRepo, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, metrics, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	studentHandler := handler.NewStudentHandler(studentSvc, rosterSvc, metrics)
	catalogHandler := handler.NewCatalogHandler(
		service.NewLevelService(levelRepo),
		service.NewGradeService(gradeRepo),
		service.NewSectionService(sectionRepo),
	)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, map[string]handler.ReadinessCheck{
		"database": func(ctx context.Context) error { return deps.DB.PingContext(ctx) },
		"redis":    cacheRepo.Ping,
	})

	limiter := middleware.NewRateLimiter(
		middleware.PerMinute(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst, cfg.RateLimit.CleanupInterval),
		logr,
	)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staff := []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin, models.RoleSecretary}
	requireStaff := []gin.HandlerFunc{middleware.JWT(authSvc), middleware.RequireRoles(staff...)}
	audit := middleware.Audit(logr.Named("audit"), "create", "student")

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", limiter.Middleware(), authHandler.Login)

	catalogos := api.Group("/catalogos")
	catalogos.GET("/niveles", catalogHandler.Levels)
	catalogos.GET("/grados", catalogHandler.Grades)
	catalogos.GET("/secciones/:gradeId", catalogHandler.Sections)
	api.GET("/grades", catalogHandler.Grades)
	api.GET("/sections/grado/:gradeId", catalogHandler.Sections)

	estudiantes := api.Group("/estudiantes", requireStaff...)
	estudiantes.POST("", audit, studentHandler.Create)
	estudiantes.GET("", studentHandler.List)
	estudiantes.GET("/export", studentHandler.Export)
	api.POST("/students", append(requireStaff, audit, studentHandler.Create)...)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	return &App{Router: r, Metrics: metrics, limiter: limiter}
}

// Close stops background work owned by the application.
func (a *App) Close() {
	a.limiter.Stop()
}
