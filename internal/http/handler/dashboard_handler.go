package handler

import (
	"net/http"
	"time"

	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/dashboard"
	"github.com/imovelhub/crm-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// @Summary Get dashboard
// @Description Returns the access-scoped dashboard for the authenticated user:
// @Description funnel metrics, the hierarchy breakdown one level below the user,
// @Description team performance counters and the seller ranking.
// @Tags Dashboard
// @Produce json
// @Param filter query string false "Date filter: today, 7days, 30days or custom" default(30days)
// @Param start query string false "Window start (RFC 3339), custom filter only"
// @Param end query string false "Window end (RFC 3339), custom filter only"
// @Success 200 {object} dashboard.DashboardData
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	filter, err := parseDateFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.dashboardService.GetDashboard(r.Context(), session, filter)
	if err != nil {
		h.logger.Error("failed to resolve dashboard",
			zap.String("user_id", session.ID.String()),
			zap.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, "failed to resolve dashboard")
		return
	}

	respondJSON(w, http.StatusOK, data)
}

// @Summary Presence heartbeat
// @Description Marks the authenticated user online for the presence window
// @Tags Dashboard
// @Success 204
// @Security BearerAuth
// @Router /dashboard/heartbeat [post]
func (h *DashboardHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	if err := h.dashboardService.Heartbeat(r.Context(), session); err != nil {
		h.logger.Error("failed to record heartbeat",
			zap.String("user_id", session.ID.String()),
			zap.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, "failed to record heartbeat")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// parseDateFilter reads the filter query parameters. Missing or unknown
// filter types default to the 30-day window; custom bounds must be RFC 3339.
func parseDateFilter(r *http.Request) (dashboard.DateFilter, error) {
	filter := dashboard.DateFilter{Type: dashboard.Filter30Days}

	switch dashboard.FilterType(r.URL.Query().Get("filter")) {
	case dashboard.FilterToday:
		filter.Type = dashboard.FilterToday
	case dashboard.Filter7Days:
		filter.Type = dashboard.Filter7Days
	case dashboard.Filter30Days, "":
		filter.Type = dashboard.Filter30Days
	case dashboard.FilterCustom:
		filter.Type = dashboard.FilterCustom
		if raw := r.URL.Query().Get("start"); raw != "" {
			start, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return filter, err
			}
			filter.Start = &start
		}
		if raw := r.URL.Query().Get("end"); raw != "" {
			end, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return filter, err
			}
			filter.End = &end
		}
	}

	return filter, nil
}
