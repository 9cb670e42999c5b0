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

type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// @Summary List companies
// @Description Lists all active agencies. Super admin only.
// @Tags Companies
// @Produce json
// @Success 200 {array} domain.Company
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies [get]
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	companies, err := h.companyService.List(r.Context(), session)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, companies)
}

// @Summary Get company
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} domain.Company
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	company, err := h.companyService.Get(r.Context(), session, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// @Summary Create company
// @Tags Companies
// @Accept json
// @Produce json
// @Param request body service.CreateCompanyInput true "Company"
// @Success 201 {object} domain.Company
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies [post]
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var input service.CreateCompanyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.companyService.Create(r.Context(), session, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, company)
}
