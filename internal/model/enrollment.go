package model

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	StatusEnrolled   EnrollmentStatus = "enrolled"
	StatusInProgress EnrollmentStatus = "in_progress"
	StatusCompleted  EnrollmentStatus = "completed"
)

var enrollmentStatusRank = map[EnrollmentStatus]int{
	StatusEnrolled:   0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// Rank orders enrollment statuses along the lifecycle. Transitions must never
// decrease the rank.
func (s EnrollmentStatus) Rank() int {
	return enrollmentStatusRank[s]
}

// Enrollment ties one user to one course. The (user, course) pair is unique.
type Enrollment struct {
	EnrollmentID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"enrollment_id"`
	CourseID             uuid.UUID        `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	UserID               uuid.UUID        `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"user_id"`
	Status               EnrollmentStatus `gorm:"not null;default:enrolled" json:"status"`
	EnrolledAt           time.Time        `gorm:"not null" json:"enrolled_at"`
	StartedAt            *time.Time       `json:"started_at,omitempty"`
	CompletedAt          *time.Time       `json:"completed_at,omitempty"`
	TimeSpent            int              `gorm:"not null;default:0" json:"time_spent"`
	CompletionPercentage float64          `gorm:"not null;default:0" json:"completion_percentage"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`

	LessonProgress []LessonProgress `gorm:"foreignKey:EnrollmentID;references:EnrollmentID" json:"lesson_progress,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type LessonStatus string

const (
	LessonNotStarted LessonStatus = "not_started"
	LessonInProgress LessonStatus = "in_progress"
	LessonCompleted  LessonStatus = "completed"
)

var lessonStatusRank = map[LessonStatus]int{
	LessonNotStarted: 0,
	LessonInProgress: 1,
	LessonCompleted:  2,
}

func (s LessonStatus) Rank() int {
	return lessonStatusRank[s]
}

// LessonProgress is the per-lesson completion state within an enrollment.
// Created lazily on first progress update; status never regresses.
type LessonProgress struct {
	ProgressID   uuid.UUID    `gorm:"type:uuid;primaryKey" json:"-"`
	EnrollmentID uuid.UUID    `gorm:"type:uuid;not null;index:idx_enrollment_lesson,unique" json:"-"`
	LessonID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_enrollment_lesson,unique" json:"lesson_id"`
	Status       LessonStatus `gorm:"not null;default:not_started" json:"status"`
	StartedAt    *time.Time   `json:"started_at,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	TimeSpent    int          `gorm:"not null;default:0" json:"time_spent"`
	CreatedAt    time.Time    `json:"-"`
	UpdatedAt    time.Time    `json:"-"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// EnrollRequest asks to enroll the current user in a course.
type EnrollRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

// LessonProgressUpdate merges non-nil fields into a lesson's progress record.
type LessonProgressUpdate struct {
	Status    *LessonStatus `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress completed"`
	TimeSpent *int          `json:"time_spent,omitempty" validate:"omitempty,gte=0"`
}

// ReportingStats summarizes enrollment states for one course.
type ReportingStats struct {
	TotalParticipants int `json:"total_participants"`
	YetToStart        int `json:"yet_to_start"`
	InProgress        int `json:"in_progress"`
	Completed         int `json:"completed"`
}

// ParticipantReport is one row of the instructor participants table.
type ParticipantReport struct {
	EnrollmentID         uuid.UUID        `json:"enrollment_id"`
	CourseName           string           `json:"course_name"`
	LearnerName          string           `json:"learner_name"`
	LearnerEmail         string           `json:"learner_email"`
	EnrolledDate         time.Time        `json:"enrolled_date"`
	StartDate            *time.Time       `json:"start_date,omitempty"`
	CompletedDate        *time.Time       `json:"completed_date,omitempty"`
	TimeSpent            int              `json:"time_spent"`
	CompletionPercentage float64          `json:"completion_percentage"`
	Status               EnrollmentStatus `json:"status"`
}
