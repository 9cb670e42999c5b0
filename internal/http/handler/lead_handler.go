package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/service"
	"go.uber.org/zap"
)

type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// @Summary List leads
// @Description Lists the leads visible to the authenticated user within a date filter
// @Tags Leads
// @Produce json
// @Param filter query string false "Date filter: today, 7days, 30days or custom" default(30days)
// @Success 200 {array} domain.Lead
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	filter, err := parseDateFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	leads, err := h.leadService.List(r.Context(), session, filter)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, leads)
}

// @Summary Create lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body service.CreateLeadInput true "Lead"
// @Success 201 {object} domain.Lead
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads [post]
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var input service.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.Create(r.Context(), session, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, lead)
}

type updateLeadStatusRequest struct {
	Status domain.LeadStatus `json:"status" validate:"required"`
}

// @Summary Update lead status
// @Description Moves a lead to a new funnel stage
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body updateLeadStatusRequest true "New status"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id}/status [put]
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var req updateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.UpdateStatus(r.Context(), session, id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lead)
}
