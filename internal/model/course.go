package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

type CourseVisibility string

const (
	VisibilityEveryone CourseVisibility = "everyone"
	VisibilitySignedIn CourseVisibility = "signed_in"
)

// CourseAccessRule controls who may enroll in a course.
type CourseAccessRule string

const (
	AccessOpen       CourseAccessRule = "open"
	AccessInvitation CourseAccessRule = "invitation"
	AccessPayment    CourseAccessRule = "payment"
)

// Course is the catalog entity. Lessons and Quizzes live in their own tables
// keyed by CourseID and are preloaded where the caller needs them.
// Price is meaningful only when AccessRule is "payment".
type Course struct {
	CourseID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"course_id"`
	Title            string           `gorm:"not null" json:"title"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description,omitempty"`
	Image            string           `json:"image,omitempty"`
	Tags             []string         `gorm:"serializer:json" json:"tags"`
	Status           CourseStatus     `gorm:"not null;default:draft;index" json:"status"`
	Visibility       CourseVisibility `gorm:"not null;default:everyone" json:"visibility"`
	AccessRule       CourseAccessRule `gorm:"not null;default:open" json:"access_rule"`
	Price            *float64         `json:"price,omitempty"`
	Website          string           `json:"website,omitempty"`
	AdminID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"admin_id"`
	Views            int              `gorm:"not null;default:0" json:"views"`
	TotalLessons     int              `gorm:"not null;default:0" json:"total_lessons"`
	TotalDuration    int              `gorm:"not null;default:0" json:"total_duration"`
	Rating           float64          `gorm:"not null;default:0" json:"rating"`
	ReviewCount      int              `gorm:"not null;default:0" json:"review_count"`
	EnrolledCount    int              `gorm:"not null;default:0" json:"enrolled_count"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	Lessons []Lesson `gorm:"foreignKey:CourseID;references:CourseID" json:"lessons,omitempty"`
	Quizzes []Quiz   `gorm:"foreignKey:CourseID;references:CourseID" json:"quizzes,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CreateCourseRequest creates a draft course with counter defaults.
type CreateCourseRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// UpdateCourseRequest merges the non-nil fields into an existing course.
type UpdateCourseRequest struct {
	Title            *string           `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description      *string           `json:"description,omitempty"`
	ShortDescription *string           `json:"short_description,omitempty"`
	Image            *string           `json:"image,omitempty"`
	Tags             *[]string         `json:"tags,omitempty"`
	Status           *CourseStatus     `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	Visibility       *CourseVisibility `json:"visibility,omitempty" validate:"omitempty,oneof=everyone signed_in"`
	AccessRule       *CourseAccessRule `json:"access_rule,omitempty" validate:"omitempty,oneof=open invitation payment"`
	Price            *float64          `json:"price,omitempty" validate:"omitempty,gte=0"`
	Website          *string           `json:"website,omitempty"`
}
