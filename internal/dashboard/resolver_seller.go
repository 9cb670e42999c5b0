package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
)

// resolveSeller produces the single-user dashboard: the seller's own leads,
// no breakdown rows, and team metrics plus ranking computed over the
// one-element seller set so the UI renders the same shapes at every level.
func resolveSeller(ctx context.Context, user *domain.SessionUser, filter DateFilter, src DataSource) (*DashboardData, error) {
	leads, err := src.LeadsBySeller(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller leads: %w", err)
	}
	userMetrics := CalculateMetrics(leads)

	self := []uuid.UUID{user.ID}
	teamMetrics, err := src.TeamMetrics(ctx, self)
	if err != nil {
		return nil, fmt.Errorf("failed to load team metrics: %w", err)
	}
	ranking, err := src.SellerRanking(ctx, self)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller ranking: %w", err)
	}

	return &DashboardData{
		UserMetrics:   userMetrics,
		TeamMetrics:   teamMetrics,
		Subordinates:  []SubordinateMetrics{},
		SellerRanking: ranking,
		TotalMetrics:  userMetrics,
		Period:        resolvePeriod(filter),
	}, nil
}
