package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/service"
	"go.uber.org/zap"
)

type AreaHandler struct {
	areaService *service.AreaService
	logger      *zap.Logger
}

func NewAreaHandler(areaService *service.AreaService, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{
		areaService: areaService,
		logger:      logger,
	}
}

// @Summary List areas
// @Description Lists the areas of the caller's company; super admins pass companyId
// @Tags Areas
// @Produce json
// @Param companyId query string false "Company ID (super admin only)"
// @Success 200 {array} domain.Area
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /areas [get]
func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var companyID *uuid.UUID
	if raw := r.URL.Query().Get("companyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid company id")
			return
		}
		companyID = &id
	}

	areas, err := h.areaService.List(r.Context(), session, companyID)
	if err != nil {
		h.logger.Error("failed to list areas", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, areas)
}

// @Summary Create area
// @Tags Areas
// @Accept json
// @Produce json
// @Param request body service.CreateAreaInput true "Area"
// @Success 201 {object} domain.Area
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /areas [post]
func (h *AreaHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var input service.CreateAreaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		respondValidationError(w, err)
		return
	}

	area, err := h.areaService.Create(r.Context(), session, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, area)
}
