package service

import (
	"context"
	"testing"

	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCourseWithLessons(t *testing.T, db *gorm.DB, status model.CourseStatus, lessonCount int) *model.Course {
	t.Helper()

	course := &model.Course{
		CourseID:   uuid.New(),
		Title:      "Test Course",
		Status:     status,
		Visibility: model.VisibilityEveryone,
		AccessRule: model.AccessOpen,
		Website:    "https://example.com/course",
		AdminID:    uuid.New(),
	}
	require.NoError(t, db.Create(course).Error)

	for i := 1; i <= lessonCount; i++ {
		lesson := &model.Lesson{
			LessonID: uuid.New(),
			CourseID: course.CourseID,
			Title:    "Lesson",
			Type:     model.LessonVideo,
			Order:    i,
			Duration: 10,
		}
		require.NoError(t, db.Create(lesson).Error)
		course.Lessons = append(course.Lessons, *lesson)
	}
	return course
}

func newEnrollmentService(db *gorm.DB) EnrollmentService {
	return NewEnrollmentService(db, repository.NewGormEnrollmentRepository(), repository.NewGormCourseRepository())
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the enrollment and bumps the counter", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 2)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		enrollment, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		assert.Equal(t, model.StatusEnrolled, enrollment.Status)
		assert.Equal(t, userID, enrollment.UserID)
		assert.False(t, enrollment.EnrolledAt.IsZero())

		var stored model.Course
		require.NoError(t, db.First(&stored, "course_id = ?", course.CourseID).Error)
		assert.Equal(t, 1, stored.EnrolledCount)
	})

	t.Run("enrolling twice is a conflict", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		_, err = svc.Enroll(ctx, userID, course.CourseID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("draft courses do not accept enrollments", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CourseDraft, 1)
		svc := newEnrollmentService(db)

		_, err := svc.Enroll(ctx, uuid.New(), course.CourseID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("unknown course is not found", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)

		_, err := svc.Enroll(ctx, uuid.New(), uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestStartCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("moves a fresh enrollment to in_progress", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		enrollment, err := svc.StartCourse(ctx, userID, course.CourseID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, enrollment.Status)
		require.NotNil(t, enrollment.StartedAt)
	})

	t.Run("starting twice is an invalid transition", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)
		_, err = svc.StartCourse(ctx, userID, course.CourseID)
		require.NoError(t, err)

		_, err = svc.StartCourse(ctx, userID, course.CourseID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("without an enrollment it is not found", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)

		_, err := svc.StartCourse(ctx, uuid.New(), course.CourseID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUpdateLessonProgress(t *testing.T) {
	ctx := context.Background()

	status := func(s model.LessonStatus) *model.LessonStatus { return &s }
	minutes := func(m int) *int { return &m }

	t.Run("creates the record on first touch", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 2)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		progress, err := svc.UpdateLessonProgress(ctx, userID, course.CourseID, course.Lessons[0].LessonID, &model.LessonProgressUpdate{
			Status:    status(model.LessonInProgress),
			TimeSpent: minutes(5),
		})
		require.NoError(t, err)
		assert.Equal(t, model.LessonInProgress, progress.Status)
		assert.Equal(t, 5, progress.TimeSpent)
		require.NotNil(t, progress.StartedAt)
	})

	t.Run("status never regresses", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)
		userID := uuid.New()
		lessonID := course.Lessons[0].LessonID

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		_, err = svc.UpdateLessonProgress(ctx, userID, course.CourseID, lessonID, &model.LessonProgressUpdate{
			Status: status(model.LessonCompleted),
		})
		require.NoError(t, err)

		_, err = svc.UpdateLessonProgress(ctx, userID, course.CourseID, lessonID, &model.LessonProgressUpdate{
			Status: status(model.LessonInProgress),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("time spent accumulates on the enrollment", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)
		userID := uuid.New()
		lessonID := course.Lessons[0].LessonID

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		for _, spent := range []int{5, 7} {
			_, err = svc.UpdateLessonProgress(ctx, userID, course.CourseID, lessonID, &model.LessonProgressUpdate{
				TimeSpent: minutes(spent),
			})
			require.NoError(t, err)
		}

		enrollment, err := svc.GetEnrollment(ctx, userID, course.CourseID)
		require.NoError(t, err)
		assert.Equal(t, 12, enrollment.TimeSpent)
	})

	t.Run("a lesson from another course is not found", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		other := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		_, err = svc.UpdateLessonProgress(ctx, userID, course.CourseID, other.Lessons[0].LessonID, &model.LessonProgressUpdate{
			Status: status(model.LessonInProgress),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCompleteLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes the completion percentage", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 4)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		enrollment, err := svc.CompleteLesson(ctx, userID, course.CourseID, course.Lessons[0].LessonID)
		require.NoError(t, err)
		assert.InDelta(t, 25, enrollment.CompletionPercentage, 0.001)
		assert.Equal(t, model.StatusInProgress, enrollment.Status, "a fresh enrollment is promoted")

		enrollment, err = svc.CompleteLesson(ctx, userID, course.CourseID, course.Lessons[1].LessonID)
		require.NoError(t, err)
		assert.InDelta(t, 50, enrollment.CompletionPercentage, 0.001)
	})

	t.Run("completing the same lesson twice does not double count", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 2)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		_, err = svc.CompleteLesson(ctx, userID, course.CourseID, course.Lessons[0].LessonID)
		require.NoError(t, err)
		enrollment, err := svc.CompleteLesson(ctx, userID, course.CourseID, course.Lessons[0].LessonID)
		require.NoError(t, err)
		assert.InDelta(t, 50, enrollment.CompletionPercentage, 0.001)
	})
}

func TestCompleteCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("forces the terminal state regardless of lesson progress", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 3)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		enrollment, err := svc.CompleteCourse(ctx, userID, course.CourseID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, enrollment.Status)
		assert.InDelta(t, 100, enrollment.CompletionPercentage, 0.001)
		require.NotNil(t, enrollment.CompletedAt)
		require.NotNil(t, enrollment.StartedAt)
	})

	t.Run("completing twice is a no-op", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 1)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		first, err := svc.CompleteCourse(ctx, userID, course.CourseID)
		require.NoError(t, err)
		second, err := svc.CompleteCourse(ctx, userID, course.CourseID)
		require.NoError(t, err)

		assert.Equal(t, model.StatusCompleted, second.Status)
		assert.Equal(t, first.CompletedAt.Unix(), second.CompletedAt.Unix())
	})
}

func TestNextLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the first incomplete lesson in order", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 3)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		lesson, err := svc.NextLesson(ctx, userID, course.CourseID)
		require.NoError(t, err)
		assert.Equal(t, course.Lessons[0].LessonID, lesson.LessonID)

		_, err = svc.CompleteLesson(ctx, userID, course.CourseID, course.Lessons[0].LessonID)
		require.NoError(t, err)

		lesson, err = svc.NextLesson(ctx, userID, course.CourseID)
		require.NoError(t, err)
		assert.Equal(t, course.Lessons[1].LessonID, lesson.LessonID)
	})

	t.Run("skips gaps left by out-of-order completion", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 3)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)
		_, err = svc.CompleteLesson(ctx, userID, course.CourseID, course.Lessons[1].LessonID)
		require.NoError(t, err)

		lesson, err := svc.NextLesson(ctx, userID, course.CourseID)
		require.NoError(t, err)
		assert.Equal(t, course.Lessons[0].LessonID, lesson.LessonID)
	})

	t.Run("wraps to the first lesson when everything is complete", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 2)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)
		for _, l := range course.Lessons {
			_, err = svc.CompleteLesson(ctx, userID, course.CourseID, l.LessonID)
			require.NoError(t, err)
		}

		lesson, err := svc.NextLesson(ctx, userID, course.CourseID)
		require.NoError(t, err)
		assert.Equal(t, course.Lessons[0].LessonID, lesson.LessonID)
	})

	t.Run("a course without lessons is not found", func(t *testing.T) {
		db := newTestDB(t)
		course := seedCourseWithLessons(t, db, model.CoursePublished, 0)
		svc := newEnrollmentService(db)
		userID := uuid.New()

		_, err := svc.Enroll(ctx, userID, course.CourseID)
		require.NoError(t, err)

		_, err = svc.NextLesson(ctx, userID, course.CourseID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
