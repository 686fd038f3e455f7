package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_learn_sphere/internal/config"
	custommiddleware "go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"
	"go_learn_sphere/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Badge{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizAttempt{},
		&model.Enrollment{},
		&model.LessonProgress{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newTestRouter wires a router covering the auth and course surface with real
// services against an in-memory store.
func newTestRouter(t *testing.T, db *gorm.DB) (chi.Router, *config.Config) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "handler-test-secret"
	cfg.JWT.TTLMinutes = 60

	userRepo := repository.NewGormUserRepository()
	courseRepo := repository.NewGormCourseRepository()
	quizRepo := repository.NewGormQuizRepository()

	authService := service.NewAuthService(db, userRepo, cfg)
	courseService := service.NewCourseService(db, courseRepo)
	gamificationService := service.NewGamificationService(db, quizRepo, userRepo)

	authHandler := NewAuthHandler(authService, gamificationService)
	courseHandler := NewCourseHandler(courseService)

	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(custommiddleware.JWTAuthMiddleware(cfg, authService))
		r.Get("/api/v1/me", authHandler.Me)
		r.Get("/api/v1/me/gamification", authHandler.MyGamification)
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireRole(model.RoleAdmin, model.RoleInstructor))
			r.Post("/api/v1/courses", courseHandler.Create)
		})
	})
	return r, cfg
}

func seedAccount(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		UserID: uuid.New(),
		Email:  email,
		Name:   "Account",
		Role:   role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func login(t *testing.T, r chi.Router, email string) string {
	t.Helper()

	body, _ := json.Marshal(model.LoginRequest{Email: email, Password: "any"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestLoginEndpoint(t *testing.T) {
	db := newTestDB(t)
	r, _ := newTestRouter(t, db)
	seedAccount(t, db, "learner@example.com", model.RoleLearner)

	t.Run("valid credentials return a token and the user", func(t *testing.T) {
		body, _ := json.Marshal(model.LoginRequest{Email: "learner@example.com", Password: "pw"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp model.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "learner@example.com", resp.User.Email)
	})

	t.Run("an unknown email returns 401", func(t *testing.T) {
		body, _ := json.Marshal(model.LoginRequest{Email: "nobody@example.com", Password: "pw"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("a malformed body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a missing email fails validation", func(t *testing.T) {
		body, _ := json.Marshal(model.LoginRequest{Password: "pw"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})
}

func TestAuthenticatedEndpoints(t *testing.T) {
	db := newTestDB(t)
	r, _ := newTestRouter(t, db)
	seedAccount(t, db, "learner@example.com", model.RoleLearner)
	seedAccount(t, db, "staff@example.com", model.RoleInstructor)

	t.Run("me requires a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me returns the session user", func(t *testing.T) {
		token := login(t, r, "learner@example.com")
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var user model.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "learner@example.com", user.Email)
	})

	t.Run("a garbage token returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("gamification reflects the point total", func(t *testing.T) {
		token := login(t, r, "learner@example.com")
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me/gamification", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp model.GamificationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.BadgeNewbie, resp.CurrentBadge)
		assert.Equal(t, model.BadgeExplorer, resp.NextBadge)
	})
}

func TestCourseCreationRoleGate(t *testing.T) {
	db := newTestDB(t)
	r, _ := newTestRouter(t, db)
	seedAccount(t, db, "learner@example.com", model.RoleLearner)
	seedAccount(t, db, "staff@example.com", model.RoleInstructor)

	createCourse := func(token string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(model.CreateCourseRequest{Title: "Gated Course"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("learners are forbidden", func(t *testing.T) {
		rec := createCourse(login(t, r, "learner@example.com"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff can create drafts", func(t *testing.T) {
		rec := createCourse(login(t, r, "staff@example.com"))
		require.Equal(t, http.StatusCreated, rec.Code)

		var course model.Course
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
		assert.Equal(t, model.CourseDraft, course.Status)
	})
}
