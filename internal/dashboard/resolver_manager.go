package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/imovelhub/crm-api/internal/domain"
)

// resolveManager scopes the dashboard to the manager's areas and breaks the
// metrics down per seller. Managers sit one level above sellers, so there is
// no further cascade; rows are ordered by total activity.
func resolveManager(ctx context.Context, user *domain.SessionUser, filter DateFilter, src DataSource) (*DashboardData, error) {
	areaIDs := scopeAreaIDs(user)
	if len(areaIDs) == 0 {
		return emptyData(filter), nil
	}

	areaUsers, err := src.UsersByAreas(ctx, areaIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load area users: %w", err)
	}
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
	responseTimes := rankingResponseTimes(ranking)

	rows, err := buildRows(ctx, len(sellers), func(ctx context.Context, i int) (SubordinateMetrics, error) {
		seller := sellers[i]
		leads, err := src.LeadsBySeller(ctx, seller.ID, filter)
		if err != nil {
			return SubordinateMetrics{}, err
		}
		row := SubordinateMetrics{
			ID:          seller.ID,
			Name:        seller.Name,
			Type:        SubordinateSeller,
			AccessLevel: domain.AccessSeller,
			Metrics:     CalculateMetrics(leads),
		}
		if rt, ok := responseTimes[seller.ID.String()]; ok {
			v := float64(rt)
			row.AvgResponseTime = &v
		}
		return row, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build breakdown: %w", err)
	}
	if rows == nil {
		rows = []SubordinateMetrics{}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Metrics.TotalActivity() > rows[j].Metrics.TotalActivity()
	})
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
