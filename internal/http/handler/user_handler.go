package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/service"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// @Summary List users
// @Description Lists the users visible to the authenticated user per their data scope
// @Tags Users
// @Produce json
// @Success 200 {array} domain.User
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	users, err := h.userService.List(r.Context(), session)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.Get(r.Context(), session, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// @Summary Create user
// @Description Creates a user account at a level below the authenticated user's
// @Tags Users
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "User"
// @Success 201 {object} domain.User
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var input service.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.userService.Create(r.Context(), session, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// @Summary Deactivate user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.Deactivate(r.Context(), session, id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
