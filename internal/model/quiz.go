package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizRewards is the point schedule indexed by attempt ordinal. The schedule
// is non-increasing; the fourth bucket covers every later attempt as well.
type QuizRewards struct {
	FirstAttempt      int `gorm:"not null;default:0" json:"first_attempt"`
	SecondAttempt     int `gorm:"not null;default:0" json:"second_attempt"`
	ThirdAttempt      int `gorm:"not null;default:0" json:"third_attempt"`
	FourthPlusAttempt int `gorm:"not null;default:0" json:"fourth_plus_attempt"`
}

type Quiz struct {
	QuizID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"quiz_id"`
	CourseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	LessonID  *uuid.UUID     `gorm:"type:uuid" json:"lesson_id,omitempty"`
	Title     string         `gorm:"not null" json:"title"`
	Rewards   QuizRewards    `gorm:"embedded;embeddedPrefix:reward_" json:"rewards"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;references:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion has exactly one option flagged IsCorrect.
type QuizQuestion struct {
	QuestionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"question_id"`
	QuizID     uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text       string    `gorm:"not null" json:"text"`
	Order      int       `gorm:"column:sequence_order;not null" json:"order"`

	Options []QuizOption `gorm:"foreignKey:QuestionID;references:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type QuizOption struct {
	OptionID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"option_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}

// QuizAttempt records one completed pass over a quiz. AttemptNumber is the
// ordinal used to pick the reward bucket.
type QuizAttempt struct {
	AttemptID     uuid.UUID         `gorm:"type:uuid;primaryKey" json:"attempt_id"`
	QuizID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_quiz_user" json:"quiz_id"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_quiz_user" json:"user_id"`
	AttemptNumber int               `gorm:"not null" json:"attempt_number"`
	Answers       map[string]string `gorm:"serializer:json" json:"answers"`
	Score         int               `gorm:"not null" json:"score"`
	PointsEarned  int               `gorm:"not null" json:"points_earned"`
	CompletedAt   time.Time         `gorm:"not null" json:"completed_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// SubmitQuizRequest maps question IDs to the selected option IDs.
type SubmitQuizRequest struct {
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

// QuizResultResponse is returned after a submission is scored and persisted.
type QuizResultResponse struct {
	AttemptID      uuid.UUID  `json:"attempt_id"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	AttemptNumber  int        `json:"attempt_number"`
	PointsEarned   int        `json:"points_earned"`
	TotalPoints    int        `json:"total_points"`
	CurrentBadge   BadgeLevel `json:"current_badge"`
	BadgeEarned    *Badge     `json:"badge_earned,omitempty"`
}
