package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go_learn_sphere/internal/config"
	"go_learn_sphere/internal/handlers"
	custommiddleware "go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"
	"go_learn_sphere/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

func main() {
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger()
	slog.SetDefault(logger)

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	if config.Cfg.App.SeedDemoData {
		if err := repository.SeedDemoData(db, logger); err != nil {
			logger.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	userRepo := repository.NewGormUserRepository()
	courseRepo := repository.NewGormCourseRepository()
	enrollmentRepo := repository.NewGormEnrollmentRepository()
	quizRepo := repository.NewGormQuizRepository()

	authService := service.NewAuthService(db, userRepo, &config.Cfg)
	courseService := service.NewCourseService(db, courseRepo)
	enrollmentService := service.NewEnrollmentService(db, enrollmentRepo, courseRepo)
	gamificationService := service.NewGamificationService(db, quizRepo, userRepo)
	reportService := service.NewReportService(db, enrollmentRepo, courseRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService, gamificationService)
	courseHandler := handlers.NewCourseHandler(courseService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)
	quizHandler := handlers.NewQuizHandler(gamificationService)
	reportHandler := handlers.NewReportHandler(reportService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	staffOnly := custommiddleware.RequireRole(model.RoleAdmin, model.RoleInstructor)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Catalog reads are public; a valid token widens them for staff.
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.OptionalJWTAuthMiddleware(&config.Cfg, authService))
			r.Get("/courses", courseHandler.List)
			r.Get("/courses/{course_id}", courseHandler.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.JWTAuthMiddleware(&config.Cfg, authService))

			r.Get("/me", authHandler.Me)
			r.Get("/me/gamification", authHandler.MyGamification)

			r.Group(func(r chi.Router) {
				r.Use(staffOnly)
				r.Post("/courses", courseHandler.Create)
				r.Patch("/courses/{course_id}", courseHandler.Update)
				r.Delete("/courses/{course_id}", courseHandler.Delete)
				r.Post("/courses/{course_id}/publish", courseHandler.TogglePublish)
				r.Get("/courses/{course_id}/report", reportHandler.CourseReport)
				r.Get("/courses/{course_id}/participants", reportHandler.Participants)
			})

			r.Route("/enrollments", func(r chi.Router) {
				r.Get("/", enrollmentHandler.List)
				r.Post("/", enrollmentHandler.Enroll)
				r.Get("/{course_id}", enrollmentHandler.Get)
				r.Post("/{course_id}/start", enrollmentHandler.Start)
				r.Get("/{course_id}/next-lesson", enrollmentHandler.NextLesson)
				r.Patch("/{course_id}/lessons/{lesson_id}", enrollmentHandler.UpdateLessonProgress)
				r.Post("/{course_id}/lessons/{lesson_id}/complete", enrollmentHandler.CompleteLesson)
				r.Post("/{course_id}/complete", enrollmentHandler.CompleteCourse)
			})

			r.Post("/quizzes/{quiz_id}/submit", quizHandler.Submit)
		})
	})

	server := &http.Server{
		Addr:    config.Cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server exited")
}
