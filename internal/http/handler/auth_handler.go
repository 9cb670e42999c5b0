package handler

import (
	"encoding/json"
	"net/http"

	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/presence"
	"github.com/imovelhub/crm-api/internal/rbac"
	"github.com/imovelhub/crm-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	presence    *presence.Tracker
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, tracker *presence.Tracker, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		presence:    tracker,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Log in
// @Description Verifies credentials and returns a session token plus the user snapshot
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Current user
// @Description Returns the authenticated user's session snapshot and visibility flags
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":       session,
		"visibility": rbac.VisibilityFor(session.AccessLevel),
	})
}

// @Summary Log out
// @Description Takes the user offline immediately. Tokens stay valid until
// @Description expiry; clients discard them on logout.
// @Tags Auth
// @Success 204
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	if err := h.presence.Disconnect(r.Context(), session.ID); err != nil {
		h.logger.Warn("failed to clear presence on logout",
			zap.String("user_id", session.ID.String()),
			zap.Error(err),
		)
	}

	respondJSON(w, http.StatusNoContent, nil)
}
