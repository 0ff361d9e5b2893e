package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ams-api/api/swagger"
	"github.com/noah-isme/ams-api/internal/handler"
	internalmiddleware "github.com/noah-isme/ams-api/internal/middleware"
	"github.com/noah-isme/ams-api/internal/repository"
	"github.com/noah-isme/ams-api/internal/service"
	"github.com/noah-isme/ams-api/pkg/cache"
	"github.com/noah-isme/ams-api/pkg/config"
	"github.com/noah-isme/ams-api/pkg/database"
	"github.com/noah-isme/ams-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ams-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ams-api/pkg/middleware/requestid"
	"github.com/noah-isme/ams-api/pkg/storage"
)

// @title Attendance Management API
// @version 1.0.0
// @description Faculty and student dashboards, attendance marking and yearly promotion.
// @BasePath /api
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("connect postgres", zap.Error(err))
	}
	defer db.Close()

	promotionTable, err := config.LoadPromotionTable(cfg.Promotion.TableFile)
	if err != nil {
		logr.Fatal("load promotion table", zap.String("file", cfg.Promotion.TableFile), zap.Error(err))
	}

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Fatal("prepare uploads dir", zap.String("dir", cfg.Uploads.Dir), zap.Error(err))
	}
	go uploads.RunCleanup(ctx, cfg.Uploads.CleanupInterval, cfg.Uploads.Retention, logr)

	metricsSvc := service.NewMetricsService()
	readiness := map[string]handler.Pinger{"postgres": db}

	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis, cfg.Cache.Enabled)
	if err != nil {
		logr.Warn("redis unavailable, query cache disabled", zap.Error(err))
	}
	if redisClient != nil {
		repo := repository.NewCacheRepository(redisClient)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
		readiness["redis"] = handler.PingFunc(repo.Ping)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	archivedRepo := repository.NewArchivedStudentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	yearRepo := repository.NewYearRepository(db)
	classRepo := repository.NewClassRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	lookupSvc := service.NewLookupService(classRepo, sectionRepo, facultyRepo)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Timetable:  timetableRepo,
		Students:   studentRepo,
		Attendance: attendanceRepo,
		Classes:    classRepo,
		Lookup:     lookupSvc,
		Cache:      cacheSvc,
		Logger:     logr,
		Location:   cfg.Location(),
	})
	attendanceSvc := service.NewAttendanceService(attendanceRepo, cacheSvc, metricsSvc, validate, logr)
	promotionSvc := service.NewPromotionService(studentRepo, yearRepo, sectionRepo, promotionTable, cacheSvc, metricsSvc, logr)
	rosterSvc := service.NewRosterService(studentRepo, uploads, cacheSvc, metricsSvc, validate, logr)
	authSvc := service.NewAuthService(adminRepo, facultyRepo, studentRepo, validate, metricsSvc, logr, service.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: cfg.Session.Issuer,
	})
	reportSvc := service.NewReportService(dashboardSvc, studentRepo, logr)
	archiveSvc := service.NewArchiveService(archivedRepo)

	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.Session(authSvc))
	handler.Routes{
		Auth:            handler.NewAuthHandler(authSvc),
		Dashboard:       handler.NewDashboardHandler(dashboardSvc),
		Attendance:      handler.NewAttendanceHandler(attendanceSvc),
		Reports:         handler.NewReportHandler(reportSvc),
		Admin:           handler.NewAdminHandler(promotionSvc, rosterSvc, archiveSvc, cfg.Uploads.MaxFileSizeBytes),
		LoginLimiter:    internalmiddleware.NewTokenBucket(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginPerMinute),
		EnforceSessions: cfg.Session.Enforce,
		AuditLogger:     logr.Named("audit"),
	}.Register(api)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
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
