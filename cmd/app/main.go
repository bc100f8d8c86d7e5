package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/config"
	"skillmap-service/internal/database"
	"skillmap-service/internal/handler"
	"skillmap-service/internal/repository"
	"skillmap-service/internal/storage"
	"skillmap-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Файловое хранилище
	blobs, err := storage.NewLocalStore(cfg.UploadDir, storage.MaxUploadBytes)
	if err != nil {
		logger.Fatalf("Upload dir unavailable: %v", err)
	}

	// Токены и пароли
	tokens := auth.NewManager(cfg.SecretKey, cfg.TokenTTL)
	hasher := auth.NewBcryptHasher()

	// Репозитории
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	vacancyRepo := repository.NewVacancyRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Use Cases
	authUC := usecase.NewAuthUseCase(userRepo, hasher, tokens)
	userUC := usecase.NewUserUseCase(userRepo, hasher)
	teacherUC := usecase.NewTeacherUseCase(userRepo, statsRepo, userUC, hasher)
	courseUC := usecase.NewCourseUseCase(courseRepo, userRepo, blobs)
	enrollmentUC := usecase.NewEnrollmentUseCase(progressRepo, courseRepo, userRepo)
	assignmentUC := usecase.NewAssignmentUseCase(assignmentRepo, courseRepo, userRepo, statsRepo)
	submissionUC := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, progressRepo, blobs)
	vacancyUC := usecase.NewVacancyUseCase(vacancyRepo, courseRepo)
	scheduleUC := usecase.NewScheduleUseCase(scheduleRepo, userRepo)
	statsUC := usecase.NewStatsUseCase(statsRepo)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	authMW := auth.NewMiddleware(tokens, userRepo)
	apiHandler := handler.NewAPIHandler(
		authUC, userUC, teacherUC, courseUC, enrollmentUC,
		assignmentUC, submissionUC, vacancyUC, scheduleUC, statsUC,
		blobs, logger,
	)
	handler.RegisterRoutes(e, apiHandler, authMW)

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
