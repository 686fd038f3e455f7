package handlers

import (
	"net/http"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/service"
	"go_learn_sphere/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courseService service.CourseService
}

func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List handles GET /api/v1/courses. Learners always see the published
// catalog; staff may ask for another state with ?status=. A ?q= parameter
// switches to search.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if query := r.URL.Query().Get("q"); query != "" {
		courses, err := h.courseService.SearchCourses(r.Context(), query)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, courses, logger)
		return
	}

	status := model.CoursePublished
	if requested := r.URL.Query().Get("status"); requested != "" {
		user, err := middleware.GetUserFromContext(r.Context())
		if err != nil || !user.HasRole(model.RoleAdmin, model.RoleInstructor) {
			webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "Only staff can browse unpublished courses.", "status", model.ErrForbidden))
			return
		}
		switch model.CourseStatus(requested) {
		case model.CourseDraft, model.CoursePublished, model.CourseArchived:
			status = model.CourseStatus(requested)
		default:
			webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Unknown course status.", "status", model.ErrInvalidInput))
			return
		}
	}

	courses, err := h.courseService.ListCourses(r.Context(), status)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, courses, logger)
}

// Get handles GET /api/v1/courses/{course_id}.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// Unpublished courses are visible to staff only.
	if course.Status != model.CoursePublished {
		user, err := middleware.GetUserFromContext(r.Context())
		if err != nil || !user.HasRole(model.RoleAdmin, model.RoleInstructor) {
			webutil.HandleError(w, logger, model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound))
			return
		}
	}
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// Create handles POST /api/v1/courses.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateCourseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "The request body is not valid JSON.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), user.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, course, logger)
}

// Update handles PATCH /api/v1/courses/{course_id}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateCourseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "The request body is not valid JSON.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), courseID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// Delete handles DELETE /api/v1/courses/{course_id}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.courseService.DeleteCourse(r.Context(), courseID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TogglePublish handles POST /api/v1/courses/{course_id}/publish.
func (h *CourseHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.courseService.TogglePublish(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// parseIDParam reads a UUID path parameter set by the chi router.
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("VALIDATION_ERROR", "The "+name+" path parameter is not a valid UUID.", name, model.ErrInvalidInput)
	}
	return id, nil
}
