package service

import (
	"context"
	"fmt"
	"time"

	"github.com/imovelhub/crm-api/internal/dashboard"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/presence"
	"go.uber.org/zap"
)

// DashboardService fronts the resolution engine. The data source is injected
// so tests and alternative backends can swap it without touching resolution
// logic.
type DashboardService struct {
	source   dashboard.DataSource
	presence *presence.Tracker
	logger   *zap.Logger
}

func NewDashboardService(source dashboard.DataSource, tracker *presence.Tracker, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		source:   source,
		presence: tracker,
		logger:   logger,
	}
}

// GetDashboard resolves the dashboard for the session user and date filter.
func (s *DashboardService) GetDashboard(ctx context.Context, user *domain.SessionUser, filter dashboard.DateFilter) (*dashboard.DashboardData, error) {
	start := time.Now()

	data, err := dashboard.Resolve(ctx, user, filter, s.source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dashboard: %w", err)
	}

	s.logger.Debug("dashboard resolved",
		zap.String("user_id", user.ID.String()),
		zap.String("access_level", string(user.AccessLevel)),
		zap.String("filter", string(filter.Type)),
		zap.Int("subordinates", len(data.Subordinates)),
		zap.Duration("duration", time.Since(start)),
	)
	return data, nil
}

// Heartbeat marks the session user online for the presence window.
func (s *DashboardService) Heartbeat(ctx context.Context, user *domain.SessionUser) error {
	if err := s.presence.Heartbeat(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	return nil
}
