package service

import (
	"context"
	"errors"

	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportService interface {
	CourseStats(ctx context.Context, courseID uuid.UUID) (*model.ReportingStats, error)
	Participants(ctx context.Context, courseID uuid.UUID) ([]*model.ParticipantReport, error)
}

type reportService struct {
	db             *gorm.DB
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	userRepo       repository.UserRepository
}

func NewReportService(db *gorm.DB, enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository, userRepo repository.UserRepository) ReportService {
	return &reportService{
		db:             db,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
	}
}

// CourseStats buckets a course's enrollments by lifecycle state.
func (s *reportService) CourseStats(ctx context.Context, courseID uuid.UUID) (*model.ReportingStats, error) {
	if _, err := s.courseRepo.FindByID(ctx, s.db, courseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course.", "", model.ErrInternalServer)
	}

	enrollments, err := s.enrollmentRepo.FindByCourse(ctx, s.db, courseID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the enrollments.", "", model.ErrInternalServer)
	}

	stats := &model.ReportingStats{TotalParticipants: len(enrollments)}
	for _, e := range enrollments {
		switch e.Status {
		case model.StatusEnrolled:
			stats.YetToStart++
		case model.StatusInProgress:
			stats.InProgress++
		case model.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

// Participants joins a course's enrollments with the learner accounts into
// the instructor report rows, in enrollment order.
func (s *reportService) Participants(ctx context.Context, courseID uuid.UUID) ([]*model.ParticipantReport, error) {
	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course.", "", model.ErrInternalServer)
	}

	enrollments, err := s.enrollmentRepo.FindByCourse(ctx, s.db, courseID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the enrollments.", "", model.ErrInternalServer)
	}

	userIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		userIDs = append(userIDs, e.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, s.db, userIDs)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the participants.", "", model.ErrInternalServer)
	}
	usersByID := make(map[uuid.UUID]*model.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	rows := make([]*model.ParticipantReport, 0, len(enrollments))
	for _, e := range enrollments {
		row := &model.ParticipantReport{
			EnrollmentID:         e.EnrollmentID,
			CourseName:           course.Title,
			EnrolledDate:         e.EnrolledAt,
			StartDate:            e.StartedAt,
			CompletedDate:        e.CompletedAt,
			TimeSpent:            e.TimeSpent,
			CompletionPercentage: e.CompletionPercentage,
			Status:               e.Status,
		}
		if u, ok := usersByID[e.UserID]; ok {
			row.LearnerName = u.Name
			row.LearnerEmail = u.Email
		}
		rows = append(rows, row)
	}
	return rows, nil
}
