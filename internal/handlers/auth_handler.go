package handlers

import (
	"net/http"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/service"
	"go_learn_sphere/internal/webutil"
)

type AuthHandler struct {
	authService         service.AuthService
	gamificationService service.GamificationService
}

func NewAuthHandler(authService service.AuthService, gamificationService service.GamificationService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		gamificationService: gamificationService,
	}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "The request body is not valid JSON.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user, logger)
}

// MyGamification handles GET /api/v1/me/gamification.
func (h *AuthHandler) MyGamification(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, h.gamificationService.Profile(r.Context(), user), logger)
}
