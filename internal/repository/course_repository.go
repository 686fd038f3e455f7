package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *model.Course) error
	FindByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error)
	FindByStatus(ctx context.Context, db *gorm.DB, status model.CourseStatus) ([]*model.Course, error)
	Search(ctx context.Context, db *gorm.DB, query string) ([]*model.Course, error)
	Update(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
	IncrementEnrolledCount(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
	FindLessons(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]*model.Lesson, error)
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

func (r *gormCourseRepository) Create(ctx context.Context, tx *gorm.DB, course *model.Course) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(course)
	if result.Error != nil {
		logger.Error("Error creating course in DB", "error", result.Error, "title", course.Title)
		return fmt.Errorf("gormCourseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) FindByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("sequence_order ASC") }).
		Preload("Quizzes").
		Where("course_id = ?", courseID).
		First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course by ID in DB", "error", result.Error, "course_id", courseID.String())
		return nil, fmt.Errorf("gormCourseRepository.FindByID: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) FindByStatus(ctx context.Context, db *gorm.DB, status model.CourseStatus) ([]*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var courses []*model.Course
	result := db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&courses)
	if result.Error != nil {
		logger.Error("Error finding courses by status in DB", "error", result.Error, "status", string(status))
		return nil, fmt.Errorf("gormCourseRepository.FindByStatus: %w", result.Error)
	}
	return courses, nil
}

// Search matches the query case-insensitively against the title or any tag.
// Tags are stored serialized, so the tag match is a substring probe against
// the serialized form; the service re-checks tag membership exactly.
func (r *gormCourseRepository) Search(ctx context.Context, db *gorm.DB, query string) ([]*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var courses []*model.Course
	pattern := "%" + strings.ToLower(query) + "%"
	result := db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(tags) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&courses)
	if result.Error != nil {
		logger.Error("Error searching courses in DB", "error", result.Error, "query", query)
		return nil, fmt.Errorf("gormCourseRepository.Search: %w", result.Error)
	}
	return courses, nil
}

func (r *gormCourseRepository) Update(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Course{}).Where("course_id = ?", courseID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating course in DB", "error", result.Error, "course_id", courseID.String())
		return fmt.Errorf("gormCourseRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("course_id = ?", courseID).Delete(&model.Course{})
	if result.Error != nil {
		logger.Error("Error deleting course in DB", "error", result.Error, "course_id", courseID.String())
		return fmt.Errorf("gormCourseRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) IncrementEnrolledCount(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Course{}).
		Where("course_id = ?", courseID).
		UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + 1"))
	if result.Error != nil {
		logger.Error("Error incrementing enrolled count in DB", "error", result.Error, "course_id", courseID.String())
		return fmt.Errorf("gormCourseRepository.IncrementEnrolledCount: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) FindLessons(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lessons []*model.Lesson
	result := db.WithContext(ctx).Where("course_id = ?", courseID).Order("sequence_order ASC").Find(&lessons)
	if result.Error != nil {
		logger.Error("Error finding lessons in DB", "error", result.Error, "course_id", courseID.String())
		return nil, fmt.Errorf("gormCourseRepository.FindLessons: %w", result.Error)
	}
	return lessons, nil
}
