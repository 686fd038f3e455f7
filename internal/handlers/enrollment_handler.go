package handlers

import (
	"net/http"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/service"
	"go_learn_sphere/internal/webutil"
)

type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// List handles GET /api/v1/enrollments.
func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrollments, err := h.enrollmentService.ListEnrollments(r.Context(), user.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, enrollments, logger)
}

// Enroll handles POST /api/v1/enrollments.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.EnrollRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "The request body is not valid JSON.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), user.UserID, req.CourseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, enrollment, logger)
}

// Get handles GET /api/v1/enrollments/{course_id}.
func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrollment, err := h.enrollmentService.GetEnrollment(r.Context(), user.UserID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, enrollment, logger)
}

// Start handles POST /api/v1/enrollments/{course_id}/start.
func (h *EnrollmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrollment, err := h.enrollmentService.StartCourse(r.Context(), user.UserID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, enrollment, logger)
}

// NextLesson handles GET /api/v1/enrollments/{course_id}/next-lesson.
func (h *EnrollmentHandler) NextLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	lesson, err := h.enrollmentService.NextLesson(r.Context(), user.UserID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, lesson, logger)
}

// UpdateLessonProgress handles PATCH /api/v1/enrollments/{course_id}/lessons/{lesson_id}.
func (h *EnrollmentHandler) UpdateLessonProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	lessonID, err := parseIDParam(r, "lesson_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.LessonProgressUpdate
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "The request body is not valid JSON.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.enrollmentService.UpdateLessonProgress(r.Context(), user.UserID, courseID, lessonID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

// CompleteLesson handles POST /api/v1/enrollments/{course_id}/lessons/{lesson_id}/complete.
func (h *EnrollmentHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	lessonID, err := parseIDParam(r, "lesson_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrollment, err := h.enrollmentService.CompleteLesson(r.Context(), user.UserID, courseID, lessonID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, enrollment, logger)
}

// CompleteCourse handles POST /api/v1/enrollments/{course_id}/complete.
func (h *EnrollmentHandler) CompleteCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrollment, err := h.enrollmentService.CompleteCourse(r.Context(), user.UserID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, enrollment, logger)
}
