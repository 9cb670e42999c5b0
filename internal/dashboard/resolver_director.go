package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
)

// resolveDirector handles directors and super admins. The breakdown is a
// strict priority cascade over the company's users: superintendents, else
// managers, else sellers, else bare areas. Only one tier is ever shown.
// Team metrics and the seller ranking are computed once over all sellers in
// the company, independent of which tier the cascade picked.
func resolveDirector(ctx context.Context, user *domain.SessionUser, filter DateFilter, src DataSource) (*DashboardData, error) {
	if user.CompanyID == nil {
		return emptyData(filter), nil
	}
	companyID := *user.CompanyID

	companyUsers, err := src.UsersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company users: %w", err)
	}

	superintendents := usersAtLevel(companyUsers, domain.AccessSuperintendent)
	managers := usersAtLevel(companyUsers, domain.AccessManager)
	sellers := usersAtLevel(companyUsers, domain.AccessSeller)

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

	var rows []SubordinateMetrics

	switch {
	case len(superintendents) > 0:
		rows, err = buildRows(ctx, len(superintendents), func(ctx context.Context, i int) (SubordinateMetrics, error) {
			super := superintendents[i]
			leads, err := superintendentRowLeads(ctx, src, companyID, filter)
			if err != nil {
				return SubordinateMetrics{}, err
			}
			return SubordinateMetrics{
				ID:              super.ID,
				Name:            super.Name,
				Type:            SubordinateSuperintendent,
				AccessLevel:     domain.AccessSuperintendent,
				Metrics:         CalculateMetrics(leads),
				AvgResponseTime: meanResponseTime(ranking),
			}, nil
		})

	case len(managers) > 0:
		rows, err = managerRows(ctx, src, managers, sellers, ranking, filter)

	case len(sellers) > 0:
		rows, err = buildRows(ctx, len(sellers), func(ctx context.Context, i int) (SubordinateMetrics, error) {
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

	default:
		areas, areasErr := src.AreasByCompany(ctx, companyID)
		if areasErr != nil {
			return nil, fmt.Errorf("failed to load company areas: %w", areasErr)
		}
		rows, err = buildRows(ctx, len(areas), func(ctx context.Context, i int) (SubordinateMetrics, error) {
			area := areas[i]
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
	if rows == nil {
		rows = []SubordinateMetrics{}
	}

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

// superintendentRowLeads is the scope policy for one superintendent's
// breakdown row. Superintendent-to-area ownership is not modeled at the
// director level, so every superintendent row currently shows all company
// leads. Replace this function once area ownership lands; the resolver
// plumbing does not depend on the choice.
func superintendentRowLeads(ctx context.Context, src DataSource, companyID uuid.UUID, filter DateFilter) ([]domain.Lead, error) {
	return src.LeadsByCompany(ctx, companyID, filter)
}
