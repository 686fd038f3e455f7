package repository

import (
	"context"
	"errors"
	"fmt"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *model.Enrollment) error
	FindByID(ctx context.Context, db *gorm.DB, enrollmentID uuid.UUID) (*model.Enrollment, error)
	FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Enrollment, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Enrollment, error)
	FindByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]*model.Enrollment, error)
	Update(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID, updates map[string]interface{}) error
	FindLessonProgress(ctx context.Context, db *gorm.DB, enrollmentID, lessonID uuid.UUID) (*model.LessonProgress, error)
	SaveLessonProgress(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error
	CountCompletedLessons(ctx context.Context, db *gorm.DB, enrollmentID uuid.UUID) (int64, error)
}

type gormEnrollmentRepository struct{}

func NewGormEnrollmentRepository() EnrollmentRepository {
	return &gormEnrollmentRepository{}
}

func (r *gormEnrollmentRepository) Create(ctx context.Context, tx *gorm.DB, enrollment *model.Enrollment) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating enrollment in DB",
			"error", result.Error,
			"user_id", enrollment.UserID.String(),
			"course_id", enrollment.CourseID.String(),
		)
		return fmt.Errorf("gormEnrollmentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEnrollmentRepository) FindByID(ctx context.Context, db *gorm.DB, enrollmentID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollment model.Enrollment
	result := db.WithContext(ctx).Preload("LessonProgress").Where("enrollment_id = ?", enrollmentID).First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding enrollment by ID in DB", "error", result.Error, "enrollment_id", enrollmentID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByID: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *gormEnrollmentRepository) FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollment model.Enrollment
	result := db.WithContext(ctx).Preload("LessonProgress").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding enrollment in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByUserAndCourse: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *gormEnrollmentRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollments []*model.Enrollment
	result := db.WithContext(ctx).Preload("LessonProgress").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments)
	if result.Error != nil {
		logger.Error("Error finding enrollments by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByUser: %w", result.Error)
	}
	return enrollments, nil
}

func (r *gormEnrollmentRepository) FindByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollments []*model.Enrollment
	result := db.WithContext(ctx).Where("course_id = ?", courseID).Order("enrolled_at ASC").Find(&enrollments)
	if result.Error != nil {
		logger.Error("Error finding enrollments by course in DB", "error", result.Error, "course_id", courseID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByCourse: %w", result.Error)
	}
	return enrollments, nil
}

func (r *gormEnrollmentRepository) Update(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Enrollment{}).Where("enrollment_id = ?", enrollmentID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating enrollment in DB", "error", result.Error, "enrollment_id", enrollmentID.String())
		return fmt.Errorf("gormEnrollmentRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormEnrollmentRepository) FindLessonProgress(ctx context.Context, db *gorm.DB, enrollmentID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.LessonProgress
	result := db.WithContext(ctx).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding lesson progress in DB",
			"error", result.Error,
			"enrollment_id", enrollmentID.String(),
			"lesson_id", lessonID.String(),
		)
		return nil, fmt.Errorf("gormEnrollmentRepository.FindLessonProgress: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormEnrollmentRepository) SaveLessonProgress(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Save(progress)
	if result.Error != nil {
		logger.Error("Error saving lesson progress in DB",
			"error", result.Error,
			"enrollment_id", progress.EnrollmentID.String(),
			"lesson_id", progress.LessonID.String(),
		)
		return fmt.Errorf("gormEnrollmentRepository.SaveLessonProgress: %w", result.Error)
	}
	return nil
}

func (r *gormEnrollmentRepository) CountCompletedLessons(ctx context.Context, db *gorm.DB, enrollmentID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND status = ?", enrollmentID, model.LessonCompleted).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting completed lessons in DB", "error", result.Error, "enrollment_id", enrollmentID.String())
		return 0, fmt.Errorf("gormEnrollmentRepository.CountCompletedLessons: %w", result.Error)
	}
	return count, nil
}
