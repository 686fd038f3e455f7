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

type QuizRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, quizID uuid.UUID) (*model.Quiz, error)
	CountAttempts(ctx context.Context, db *gorm.DB, quizID, userID uuid.UUID) (int64, error)
	CreateAttempt(ctx context.Context, tx *gorm.DB, attempt *model.QuizAttempt) error
}

type gormQuizRepository struct{}

func NewGormQuizRepository() QuizRepository {
	return &gormQuizRepository{}
}

func (r *gormQuizRepository) FindByID(ctx context.Context, db *gorm.DB, quizID uuid.UUID) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)
	var quiz model.Quiz
	result := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("sequence_order ASC") }).
		Preload("Questions.Options").
		Where("quiz_id = ?", quizID).
		First(&quiz)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding quiz by ID in DB", "error", result.Error, "quiz_id", quizID.String())
		return nil, fmt.Errorf("gormQuizRepository.FindByID: %w", result.Error)
	}
	return &quiz, nil
}

func (r *gormQuizRepository) CountAttempts(ctx context.Context, db *gorm.DB, quizID, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting quiz attempts in DB",
			"error", result.Error,
			"quiz_id", quizID.String(),
			"user_id", userID.String(),
		)
		return 0, fmt.Errorf("gormQuizRepository.CountAttempts: %w", result.Error)
	}
	return count, nil
}

func (r *gormQuizRepository) CreateAttempt(ctx context.Context, tx *gorm.DB, attempt *model.QuizAttempt) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(attempt)
	if result.Error != nil {
		logger.Error("Error creating quiz attempt in DB",
			"error", result.Error,
			"quiz_id", attempt.QuizID.String(),
			"user_id", attempt.UserID.String(),
		)
		return fmt.Errorf("gormQuizRepository.CreateAttempt: %w", result.Error)
	}
	return nil
}
