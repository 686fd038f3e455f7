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

type UserRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	FindByIDs(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) ([]*model.User, error)
	Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]interface{}) error
	CreateBadge(ctx context.Context, tx *gorm.DB, badge *model.Badge) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).Preload("Badges").Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).Preload("Badges").Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by email in DB", "error", result.Error, "email", email)
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByIDs(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) ([]*model.User, error) {
	logger := middleware.GetLogger(ctx)
	if len(userIDs) == 0 {
		return nil, nil
	}
	var users []*model.User
	result := db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&users)
	if result.Error != nil {
		logger.Error("Error finding users by IDs in DB", "error", result.Error)
		return nil, fmt.Errorf("gormUserRepository.FindByIDs: %w", result.Error)
	}
	return users, nil
}

func (r *gormUserRepository) Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating user in DB", "error", result.Error, "user_id", userID.String())
		return fmt.Errorf("gormUserRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) CreateBadge(ctx context.Context, tx *gorm.DB, badge *model.Badge) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(badge)
	if result.Error != nil {
		logger.Error("Error creating badge in DB",
			"error", result.Error,
			"user_id", badge.UserID.String(),
			"name", string(badge.Name),
		)
		return fmt.Errorf("gormUserRepository.CreateBadge: %w", result.Error)
	}
	return nil
}
