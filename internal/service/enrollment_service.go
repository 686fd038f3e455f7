package service

import (
	"context"
	"errors"
	"time"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	GetEnrollment(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error)
	StartCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	UpdateLessonProgress(ctx context.Context, userID, courseID, lessonID uuid.UUID, req *model.LessonProgressUpdate) (*model.LessonProgress, error)
	CompleteLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*model.Enrollment, error)
	CompleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	NextLesson(ctx context.Context, userID, courseID uuid.UUID) (*model.Lesson, error)
}

type enrollmentService struct {
	db             *gorm.DB
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

func NewEnrollmentService(db *gorm.DB, enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) EnrollmentService {
	return &enrollmentService{
		db:             db,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
	}
}

// Enroll creates the (user, course) enrollment. Enrolling twice in the same
// course is a conflict; only published courses accept enrollments.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID)

	var enrollment *model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.courseRepo.FindByID(ctx, tx, courseID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course.", "", model.ErrInternalServer)
		}
		if course.Status != model.CoursePublished {
			return model.NewAppError("COURSE_NOT_PUBLISHED", "The course is not open for enrollment.", "course_id", model.ErrInvalidInput)
		}

		if _, err := s.enrollmentRepo.FindByUserAndCourse(ctx, tx, userID, courseID); err == nil {
			return model.NewAppError("ALREADY_ENROLLED", "You are already enrolled in this course.", "course_id", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to check the existing enrollment.", "", model.ErrInternalServer)
		}

		enrollment = &model.Enrollment{
			EnrollmentID: uuid.New(),
			CourseID:     courseID,
			UserID:       userID,
			Status:       model.StatusEnrolled,
			EnrolledAt:   time.Now(),
		}
		if err := s.enrollmentRepo.Create(ctx, tx, enrollment); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("ALREADY_ENROLLED", "You are already enrolled in this course.", "course_id", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the enrollment.", "", model.ErrInternalServer)
		}

		if err := s.courseRepo.IncrementEnrolledCount(ctx, tx, courseID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the course counters.", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User enrolled in course", "enrollment_id", enrollment.EnrollmentID.String())
	return enrollment, nil
}

func (s *enrollmentService) GetEnrollment(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(ctx, s.db, userID, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ENROLLMENT_NOT_FOUND", "You are not enrolled in this course.", "course_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the enrollment.", "", model.ErrInternalServer)
	}
	return enrollment, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to list enrollments.", "", model.ErrInternalServer)
	}
	if enrollments == nil {
		enrollments = []*model.Enrollment{}
	}
	return enrollments, nil
}

// StartCourse moves a fresh enrollment to in_progress and stamps StartedAt.
// Any other starting state is an invalid transition.
func (s *enrollmentService) StartCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID)

	var enrollment *model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.enrollmentRepo.FindByUserAndCourse(ctx, tx, userID, courseID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("ENROLLMENT_NOT_FOUND", "You are not enrolled in this course.", "course_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the enrollment.", "", model.ErrInternalServer)
		}
		if current.Status != model.StatusEnrolled {
			return model.NewAppError("INVALID_TRANSITION", "The course has already been started.", "status", model.ErrInvalidTransition)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     model.StatusInProgress,
			"started_at": now,
		}
		if err := s.enrollmentRepo.Update(ctx, tx, current.EnrollmentID, updates); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to start the course.", "", model.ErrInternalServer)
		}
		current.Status = model.StatusInProgress
		current.StartedAt = &now
		enrollment = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Course started", "enrollment_id", enrollment.EnrollmentID.String())
	return enrollment, nil
}

// UpdateLessonProgress merges the non-nil fields into the per-lesson record,
// creating it on first touch. The lesson status never regresses and time spent
// accumulates on both the lesson and the enrollment.
func (s *enrollmentService) UpdateLessonProgress(ctx context.Context, userID, courseID, lessonID uuid.UUID, req *model.LessonProgressUpdate) (*model.LessonProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID, "lesson_id", lessonID)

	var progress *model.LessonProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := s.loadEnrollmentForLesson(ctx, tx, userID, courseID, lessonID)
		if err != nil {
			return err
		}

		progress, err = s.loadOrInitProgress(ctx, tx, enrollment.EnrollmentID, lessonID)
		if err != nil {
			return err
		}

		now := time.Now()
		if req.Status != nil {
			if req.Status.Rank() < progress.Status.Rank() {
				return model.NewAppError("INVALID_TRANSITION", "Lesson progress cannot move backwards.", "status", model.ErrInvalidTransition)
			}
			if progress.Status == model.LessonNotStarted && req.Status.Rank() > model.LessonNotStarted.Rank() {
				progress.StartedAt = &now
			}
			if *req.Status == model.LessonCompleted && progress.CompletedAt == nil {
				progress.CompletedAt = &now
			}
			progress.Status = *req.Status
		}
		if req.TimeSpent != nil {
			progress.TimeSpent += *req.TimeSpent
			if err := s.enrollmentRepo.Update(ctx, tx, enrollment.EnrollmentID, map[string]interface{}{
				"time_spent": gorm.Expr("time_spent + ?", *req.TimeSpent),
			}); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the enrollment time.", "", model.ErrInternalServer)
			}
		}

		if err := s.enrollmentRepo.SaveLessonProgress(ctx, tx, progress); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the lesson progress.", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Lesson progress updated", "status", string(progress.Status))
	return progress, nil
}

// CompleteLesson marks one lesson finished and recomputes the enrollment's
// completion percentage from the completed-lesson count. A fresh enrollment is
// promoted to in_progress on the way.
func (s *enrollmentService) CompleteLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID, "lesson_id", lessonID)

	var enrollment *model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.loadEnrollmentForLesson(ctx, tx, userID, courseID, lessonID)
		if err != nil {
			return err
		}

		progress, err := s.loadOrInitProgress(ctx, tx, current.EnrollmentID, lessonID)
		if err != nil {
			return err
		}

		now := time.Now()
		if progress.Status != model.LessonCompleted {
			if progress.StartedAt == nil {
				progress.StartedAt = &now
			}
			progress.Status = model.LessonCompleted
			progress.CompletedAt = &now
			if err := s.enrollmentRepo.SaveLessonProgress(ctx, tx, progress); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the lesson progress.", "", model.ErrInternalServer)
			}
		}

		lessons, err := s.courseRepo.FindLessons(ctx, tx, courseID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course lessons.", "", model.ErrInternalServer)
		}
		completed, err := s.enrollmentRepo.CountCompletedLessons(ctx, tx, current.EnrollmentID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to count completed lessons.", "", model.ErrInternalServer)
		}

		percentage := 100.0
		if len(lessons) > 0 {
			percentage = float64(completed) / float64(len(lessons)) * 100
		}

		updates := map[string]interface{}{"completion_percentage": percentage}
		if current.Status == model.StatusEnrolled {
			updates["status"] = model.StatusInProgress
			updates["started_at"] = now
			current.Status = model.StatusInProgress
			current.StartedAt = &now
		}
		if err := s.enrollmentRepo.Update(ctx, tx, current.EnrollmentID, updates); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the enrollment.", "", model.ErrInternalServer)
		}
		current.CompletionPercentage = percentage
		enrollment = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Lesson completed",
		"enrollment_id", enrollment.EnrollmentID.String(),
		"completion_percentage", enrollment.CompletionPercentage,
	)
	return enrollment, nil
}

// CompleteCourse force-completes the enrollment regardless of per-lesson
// state: status completed, percentage 100, CompletedAt stamped. Completing an
// already completed course is a no-op.
func (s *enrollmentService) CompleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID)

	var enrollment *model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.enrollmentRepo.FindByUserAndCourse(ctx, tx, userID, courseID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("ENROLLMENT_NOT_FOUND", "You are not enrolled in this course.", "course_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the enrollment.", "", model.ErrInternalServer)
		}
		if current.Status == model.StatusCompleted {
			enrollment = current
			return nil
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":                model.StatusCompleted,
			"completed_at":          now,
			"completion_percentage": 100.0,
		}
		if current.StartedAt == nil {
			updates["started_at"] = now
			current.StartedAt = &now
		}
		if err := s.enrollmentRepo.Update(ctx, tx, current.EnrollmentID, updates); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to complete the course.", "", model.ErrInternalServer)
		}
		current.Status = model.StatusCompleted
		current.CompletedAt = &now
		current.CompletionPercentage = 100
		enrollment = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Course completed", "enrollment_id", enrollment.EnrollmentID.String())
	return enrollment, nil
}

// NextLesson resolves where playback should resume: the first lesson in
// course order without a completed progress record, or the first lesson when
// everything is done. Courses without lessons yield not found.
func (s *enrollmentService) NextLesson(ctx context.Context, userID, courseID uuid.UUID) (*model.Lesson, error) {
	enrollment, err := s.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.courseRepo.FindLessons(ctx, s.db, courseID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course lessons.", "", model.ErrInternalServer)
	}
	if len(lessons) == 0 {
		return nil, model.NewAppError("NO_LESSONS", "The course has no lessons.", "course_id", model.ErrNotFound)
	}

	completedByLesson := make(map[uuid.UUID]bool, len(enrollment.LessonProgress))
	for _, p := range enrollment.LessonProgress {
		if p.Status == model.LessonCompleted {
			completedByLesson[p.LessonID] = true
		}
	}

	for _, lesson := range lessons {
		if !completedByLesson[lesson.LessonID] {
			return lesson, nil
		}
	}
	return lessons[0], nil
}

// loadEnrollmentForLesson verifies both the enrollment and the lesson's
// membership in the course before any progress write.
func (s *enrollmentService) loadEnrollmentForLesson(ctx context.Context, tx *gorm.DB, userID, courseID, lessonID uuid.UUID) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(ctx, tx, userID, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ENROLLMENT_NOT_FOUND", "You are not enrolled in this course.", "course_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the enrollment.", "", model.ErrInternalServer)
	}

	lessons, err := s.courseRepo.FindLessons(ctx, tx, courseID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course lessons.", "", model.ErrInternalServer)
	}
	for _, lesson := range lessons {
		if lesson.LessonID == lessonID {
			return enrollment, nil
		}
	}
	return nil, model.NewAppError("LESSON_NOT_FOUND", "The lesson does not belong to this course.", "lesson_id", model.ErrNotFound)
}

func (s *enrollmentService) loadOrInitProgress(ctx context.Context, tx *gorm.DB, enrollmentID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	progress, err := s.enrollmentRepo.FindLessonProgress(ctx, tx, enrollmentID, lessonID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the lesson progress.", "", model.ErrInternalServer)
	}
	return &model.LessonProgress{
		ProgressID:   uuid.New(),
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		Status:       model.LessonNotStarted,
	}, nil
}
