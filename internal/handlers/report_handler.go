package handlers

import (
	"net/http"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/service"
	"go_learn_sphere/internal/webutil"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CourseReport handles GET /api/v1/courses/{course_id}/report.
func (h *ReportHandler) CourseReport(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	stats, err := h.reportService.CourseStats(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// Participants handles GET /api/v1/courses/{course_id}/participants.
func (h *ReportHandler) Participants(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	participants, err := h.reportService.Participants(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, participants, logger)
}
