package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonDocument LessonType = "document"
	LessonImage    LessonType = "image"
	LessonQuiz     LessonType = "quiz"
)

// Lesson belongs to exactly one course. Order defines sequential playback and
// next-incomplete-lesson resolution.
type Lesson struct {
	LessonID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"lesson_id"`
	CourseID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description,omitempty"`
	Type          LessonType     `gorm:"not null" json:"type"`
	Order         int            `gorm:"column:sequence_order;not null" json:"order"`
	Duration      int            `gorm:"not null;default:0" json:"duration"`
	VideoURL      string         `json:"video_url,omitempty"`
	DocumentURL   string         `json:"document_url,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	QuizID        *uuid.UUID     `gorm:"type:uuid" json:"quiz_id,omitempty"`
	AllowDownload bool           `gorm:"not null;default:false" json:"allow_download"`
	Attachments   []Attachment   `gorm:"serializer:json" json:"attachments"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type AttachmentType string

const (
	AttachmentFile AttachmentType = "file"
	AttachmentLink AttachmentType = "link"
)

// Attachment is an auxiliary file or link on a lesson. Stored denormalized on
// the lesson row.
type Attachment struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	URL  string         `json:"url"`
	Type AttachmentType `json:"type"`
	Size int64          `json:"size,omitempty"`
}
