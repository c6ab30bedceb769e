package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-home-api/api/swagger"
	"github.com/noah-isme/course-home-api/internal/handler"
	internalmiddleware "github.com/noah-isme/course-home-api/internal/middleware"
	"github.com/noah-isme/course-home-api/internal/repository"
	"github.com/noah-isme/course-home-api/internal/service"
	"github.com/noah-isme/course-home-api/pkg/cache"
	"github.com/noah-isme/course-home-api/pkg/config"
	"github.com/noah-isme/course-home-api/pkg/database"
	"github.com/noah-isme/course-home-api/pkg/jobs"
	"github.com/noah-isme/course-home-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-home-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-home-api/pkg/middleware/requestid"
)

// @title Course Home API
// @version 1.0.0
// @description Course home metadata, outline tab and self-enrollment.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient redis.UniversalClient
	if cfg.CourseHome.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, serving without cache", zap.Error(err))
		} else {
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, repository.CachePrefix)
	defer cacheRepo.Close() //nolint:errcheck

	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	outlineRepo := repository.NewOutlineRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.CourseHome.CacheTTL, logr, redisClient != nil)
	catalog := service.NewCourseCatalog(courseRepo, cacheSvc, cfg.CourseHome.CacheTTL)
	authSvc := service.NewAuthService(logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	auditWorker := service.NewEnrollmentAuditWorker(auditRepo, logr)
	auditQueue := jobs.NewQueue(service.EnrollmentAuditQueueName, auditWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Enrollment.AuditWorkers,
		MaxRetries: cfg.Enrollment.AuditRetries,
		Logger:     logr,
		OnDrop: func(jobs.Job, error) {
			metrics.ObserveAuditDropped()
		},
	})
	auditQueue.Start(ctx)
	defer auditQueue.Stop()

	courseHomeSvc := service.NewCourseHomeService(service.CourseHomeServiceParams{
		Catalog:     catalog,
		Enrollments: enrollmentRepo,
		Metrics:     metrics,
		Logger:      logr,
		ChatEnabled: cfg.Chat.Enabled,
	})
	outlineSvc := service.NewOutlineService(service.OutlineServiceParams{
		Catalog:     catalog,
		Enrollments: enrollmentRepo,
		Outline:     outlineRepo,
		Cache:       cacheSvc,
		Metrics:     metrics,
		Logger:      logr,
		Config: service.OutlineServiceConfig{
			CacheTTL:       cfg.CourseHome.CacheTTL,
			EndAlertWindow: cfg.CourseHome.EndAlertWindow,
		},
	})
	enrollmentSvc := service.NewEnrollmentService(service.EnrollmentServiceParams{
		Catalog:     catalog,
		Enrollments: enrollmentRepo,
		Queue:       auditQueue,
		Validator:   validator.New(),
		Metrics:     metrics,
		Logger:      logr,
	})

	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	courseHomeHandler := handler.NewCourseHomeHandler(courseHomeSvc, catalog)
	outlineHandler := handler.NewOutlineHandler(outlineSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(authSvc), internalmiddleware.WithResponseMeta())
	{
		courseHome := api.Group("/course_home/:courseId")
		courseHome.GET("/metadata", courseHomeHandler.Metadata)
		courseHome.GET("/outline", outlineHandler.Outline)
		courseHome.GET("/outline/export", outlineHandler.Export)
		courseHome.DELETE("/cache", internalmiddleware.RequireStaff(), courseHomeHandler.PurgeCache)

		api.POST("/enrollment", enrollmentHandler.Create)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
