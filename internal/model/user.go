package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
	RoleLearner    UserRole = "learner"
	RoleGuest      UserRole = "guest"
)

// User is an account in the fixed identity set. Points and Badges are the
// only fields mutated in-scope (quiz completion awards both).
type User struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Name      string         `gorm:"not null" json:"name"`
	Avatar    string         `json:"avatar,omitempty"`
	Role      UserRole       `gorm:"not null;default:learner" json:"role"`
	Points    int            `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Badges []Badge `gorm:"foreignKey:UserID;references:UserID" json:"badges"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user's role is one of the given roles.
func (u *User) HasRole(roles ...UserRole) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

type ContextKey string

const UserKey ContextKey = "currentUser"

// LoginRequest is the login API request body. The password is required by the
// contract but is not verified against anything: the identity set is a mock.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// GamificationResponse describes the user's standing in the badge ladder.
type GamificationResponse struct {
	Points         int        `json:"points"`
	CurrentBadge   BadgeLevel `json:"current_badge"`
	NextBadge      BadgeLevel `json:"next_badge,omitempty"`
	PointsToNext   int        `json:"points_to_next,omitempty"`
	ProgressToNext float64    `json:"progress_to_next"`
	Badges         []Badge    `json:"badges"`
}
