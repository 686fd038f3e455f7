package repository

import (
	"fmt"
	"log/slog"
	"time"

	"go_learn_sphere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixed IDs keep demo logins and API examples stable across restarts when the
// store is not in-memory.
var (
	seedAdminID      = uuid.MustParse("0b9f9edb-8f47-4a63-9c2e-1a1a64c2b101")
	seedInstructorID = uuid.MustParse("9d2b3a1c-55f0-4c1b-8a77-2b2b75d3c202")
	seedLearnerID    = uuid.MustParse("4e8c6d2f-7a19-4f3d-b5e8-3c3c86e4d303")
	seedLearner2ID   = uuid.MustParse("6f1d8e4a-93b2-4e5f-a7c9-4d4d97f5e404")

	seedCourseGoID    = uuid.MustParse("a1f2e3d4-c5b6-4a79-8890-5e5ea8061505")
	seedCourseSQLID   = uuid.MustParse("b2a3f4e5-d6c7-4b8a-9901-6f6fb9172606")
	seedCourseDraftID = uuid.MustParse("c3b4a5f6-e7d8-4c9b-aa12-7a7aca283707")

	seedQuizID = uuid.MustParse("d4c5b6a7-f8e9-4dac-bb23-8b8bdb394808")
)

// SeedDemoData loads a small fixed roster of accounts, courses, lessons and a
// quiz. It is a no-op when the users table already has rows.
func SeedDemoData(db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("SeedDemoData: %w", err)
	}
	if count > 0 {
		logger.Debug("Demo data already present, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(seedUsers()).Error; err != nil {
			return fmt.Errorf("SeedDemoData users: %w", err)
		}
		if err := tx.Create(seedBadges()).Error; err != nil {
			return fmt.Errorf("SeedDemoData badges: %w", err)
		}
		if err := tx.Create(seedCourses()).Error; err != nil {
			return fmt.Errorf("SeedDemoData courses: %w", err)
		}
		if err := tx.Create(seedLessons()).Error; err != nil {
			return fmt.Errorf("SeedDemoData lessons: %w", err)
		}
		if err := tx.Create(seedQuiz()).Error; err != nil {
			return fmt.Errorf("SeedDemoData quiz: %w", err)
		}
		logger.Info("Demo data seeded")
		return nil
	})
}

func seedUsers() []*model.User {
	return []*model.User{
		{
			UserID: seedAdminID,
			Email:  "sarah.johnson@learnsphere.dev",
			Name:   "Sarah Johnson",
			Role:   model.RoleAdmin,
			Points: 150,
		},
		{
			UserID: seedInstructorID,
			Email:  "michael.chen@learnsphere.dev",
			Name:   "Michael Chen",
			Role:   model.RoleInstructor,
			Points: 85,
		},
		{
			UserID: seedLearnerID,
			Email:  "emily.davis@learnsphere.dev",
			Name:   "Emily Davis",
			Role:   model.RoleLearner,
			Points: 45,
		},
		{
			UserID: seedLearner2ID,
			Email:  "alex.thompson@learnsphere.dev",
			Name:   "Alex Thompson",
			Role:   model.RoleLearner,
			Points: 25,
		},
	}
}

// Each account carries the badge history matching its point total: one row
// per earned tier.
func seedBadges() []*model.Badge {
	earned := time.Now().AddDate(0, -1, 0)
	var badges []*model.Badge
	for _, u := range seedUsers() {
		for _, tier := range model.BadgeLadder {
			if u.Points < tier.Points {
				break
			}
			badges = append(badges, &model.Badge{
				BadgeID:  uuid.New(),
				UserID:   u.UserID,
				Name:     tier.Level,
				Points:   tier.Points,
				EarnedAt: earned,
			})
		}
	}
	return badges
}

func seedCourses() []*model.Course {
	return []*model.Course{
		{
			CourseID:         seedCourseGoID,
			Title:            "Backend Development with Go",
			Description:      "Build production HTTP services in Go, from routing and middleware to persistence.",
			ShortDescription: "Production HTTP services in Go.",
			Tags:             []string{"go", "backend", "api"},
			Status:           model.CoursePublished,
			Visibility:       model.VisibilityEveryone,
			AccessRule:       model.AccessOpen,
			Website:          "https://learnsphere.dev/courses/go-backend",
			AdminID:          seedInstructorID,
			TotalLessons:     3,
			TotalDuration:    95,
		},
		{
			CourseID:         seedCourseSQLID,
			Title:            "Practical SQL for Analysts",
			Description:      "Joins, aggregates and window functions against real datasets.",
			ShortDescription: "Hands-on SQL querying.",
			Tags:             []string{"sql", "data"},
			Status:           model.CoursePublished,
			Visibility:       model.VisibilitySignedIn,
			AccessRule:       model.AccessOpen,
			Website:          "https://learnsphere.dev/courses/practical-sql",
			AdminID:          seedAdminID,
			TotalLessons:     0,
			TotalDuration:    0,
		},
		{
			CourseID:    seedCourseDraftID,
			Title:       "Kubernetes Fundamentals",
			Description: "Deploying and operating workloads on Kubernetes.",
			Tags:        []string{"kubernetes", "devops"},
			Status:      model.CourseDraft,
			Visibility:  model.VisibilityEveryone,
			AccessRule:  model.AccessOpen,
			AdminID:     seedInstructorID,
		},
	}
}

func seedLessons() []*model.Lesson {
	quizID := seedQuizID
	return []*model.Lesson{
		{
			LessonID: uuid.MustParse("e5d6c7b8-a9fa-4ebd-cc34-9c9cec4a5909"),
			CourseID: seedCourseGoID,
			Title:    "HTTP Servers and Routing",
			Type:     model.LessonVideo,
			Order:    1,
			Duration: 40,
			VideoURL: "https://cdn.learnsphere.dev/go/01-http.mp4",
		},
		{
			LessonID:    uuid.MustParse("f6e7d8c9-baab-4fce-dd45-adadfd5b6a0a"),
			CourseID:    seedCourseGoID,
			Title:       "Persistence with GORM",
			Type:        model.LessonDocument,
			Order:       2,
			Duration:    35,
			DocumentURL: "https://cdn.learnsphere.dev/go/02-gorm.pdf",
			Attachments: []model.Attachment{
				{
					ID:   "att-gorm-cheatsheet",
					Name: "GORM cheat sheet",
					URL:  "https://cdn.learnsphere.dev/go/gorm-cheatsheet.pdf",
					Type: model.AttachmentFile,
					Size: 204800,
				},
			},
			AllowDownload: true,
		},
		{
			LessonID: uuid.MustParse("a7f8e9da-cbbc-4adf-ee56-bebeae6c7b1b"),
			CourseID: seedCourseGoID,
			Title:    "Knowledge Check",
			Type:     model.LessonQuiz,
			Order:    3,
			Duration: 20,
			QuizID:   &quizID,
		},
	}
}

func seedQuiz() *model.Quiz {
	q1 := uuid.MustParse("b8a9fae0-dccd-4bea-ff67-cfcfbf7d8c2c")
	q2 := uuid.MustParse("c9bafbf1-edde-4cfb-aa78-dadaca8e9d3d")
	return &model.Quiz{
		QuizID:   seedQuizID,
		CourseID: seedCourseGoID,
		Title:    "Go Backend Basics",
		Rewards: model.QuizRewards{
			FirstAttempt:      50,
			SecondAttempt:     30,
			ThirdAttempt:      20,
			FourthPlusAttempt: 10,
		},
		Questions: []model.QuizQuestion{
			{
				QuestionID: q1,
				QuizID:     seedQuizID,
				Text:       "Which package provides the standard HTTP server?",
				Order:      1,
				Options: []model.QuizOption{
					{OptionID: uuid.MustParse("daebacf2-feef-4dac-bb89-ebebdb9fae4e"), QuestionID: q1, Text: "net/http", IsCorrect: true},
					{OptionID: uuid.MustParse("ebfcbda3-affa-4ebd-cc9a-fcfcecaabf5f"), QuestionID: q1, Text: "encoding/json"},
					{OptionID: uuid.MustParse("fcadceb4-baab-4fce-ddab-adadfdbbca6a"), QuestionID: q1, Text: "io/fs"},
				},
			},
			{
				QuestionID: q2,
				QuizID:     seedQuizID,
				Text:       "What does a GORM transaction roll back on?",
				Order:      2,
				Options: []model.QuizOption{
					{OptionID: uuid.MustParse("adbedfc5-cbbc-4adf-eebc-bebeaeccdb7b"), QuestionID: q2, Text: "A non-nil error from the callback", IsCorrect: true},
					{OptionID: uuid.MustParse("becfead6-dccd-4bea-ffcd-cfcfbfddec8c"), QuestionID: q2, Text: "Any log line at warn level"},
					{OptionID: uuid.MustParse("cfdafbe7-edde-4cfb-aade-dadacaeefd9d"), QuestionID: q2, Text: "Nothing, rollbacks are manual"},
				},
			},
		},
	}
}
