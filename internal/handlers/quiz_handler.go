package handlers

import (
	"net/http"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/service"
	"go_learn_sphere/internal/webutil"
)

type QuizHandler struct {
	gamificationService service.GamificationService
}

func NewQuizHandler(gamificationService service.GamificationService) *QuizHandler {
	return &QuizHandler{gamificationService: gamificationService}
}

// Submit handles POST /api/v1/quizzes/{quiz_id}/submit.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	quizID, err := parseIDParam(r, "quiz_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SubmitQuizRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "The request body is not valid JSON.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.gamificationService.SubmitQuiz(r.Context(), user.UserID, quizID, req.Answers)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
