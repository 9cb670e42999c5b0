package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
)

// resolveSuperintendent scopes the dashboard to the user's managed areas,
// falling back to their own area. If managers exist inside those areas the
// breakdown is one row per manager; otherwise one row per area directly,
// which covers sellers working without a manager.
func resolveSuperintendent(ctx context.Context, user *domain.SessionUser, filter DateFilter, src DataSource) (*DashboardData, error) {
	if user.CompanyID == nil {
		return emptyData(filter), nil
	}

	areaIDs := scopeAreaIDs(user)
	if len(areaIDs) == 0 {
		return emptyData(filter), nil
	}

	areaUsers, err := src.UsersByAreas(ctx, areaIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load area users: %w", err)
	}
	managers := usersAtLevel(areaUsers, domain.AccessManager)
	sellers := usersAtLevel(areaUsers, domain.AccessSeller)

	sellerIDs := userIDs(sellers)
	teamMetrics, err := src.TeamMetrics(ctx, sellerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team metrics: %w", err)
	}
	ranking, err := src.SellerRanking(ctx, sellerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller ranking: %w", err)
	}

	var rows []SubordinateMetrics
	if len(managers) > 0 {
		rows, err = managerRows(ctx, src, managers, sellers, ranking, filter)
	} else {
		rows, err = buildRows(ctx, len(areaIDs), func(ctx context.Context, i int) (SubordinateMetrics, error) {
			area, err := src.Area(ctx, areaIDs[i])
			if err != nil {
				return SubordinateMetrics{}, err
			}
			if area == nil {
				// Stale managed-area reference; contributes nothing.
				return SubordinateMetrics{Type: SubordinateArea}, nil
			}
			leads, err := src.LeadsByArea(ctx, area.ID, filter)
			if err != nil {
				return SubordinateMetrics{}, err
			}
			return SubordinateMetrics{
				ID:              area.ID,
				Name:            area.Name,
				Type:            SubordinateArea,
				Metrics:         CalculateMetrics(leads),
				AvgResponseTime: meanResponseTime(rankingFor(ranking, sellersInArea(sellers, area.ID))),
			}, nil
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build breakdown: %w", err)
	}

	// Drop placeholder rows left by stale area references.
	filtered := rows[:0]
	for _, row := range rows {
		if row.ID != uuid.Nil {
			filtered = append(filtered, row)
		}
	}
	rows = filtered

	sortBySoldDesc(rows)
	total := SumMetrics(metricsOf(rows))

	return &DashboardData{
		UserMetrics:   total,
		TeamMetrics:   teamMetrics,
		Subordinates:  rows,
		SellerRanking: ranking,
		TotalMetrics:  total,
		Period:        resolvePeriod(filter),
	}, nil
}
