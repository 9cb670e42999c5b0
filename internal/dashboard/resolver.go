package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Resolve dispatches a session user and date filter to the resolver for the
// user's access level. Every resolver returns the same DashboardData shape;
// an unknown access level resolves to an empty dashboard rather than an error
// so the UI always has something to render.
func Resolve(ctx context.Context, user *domain.SessionUser, filter DateFilter, src DataSource) (*DashboardData, error) {
	switch user.AccessLevel {
	case domain.AccessSuperAdmin, domain.AccessDirector:
		return resolveDirector(ctx, user, filter, src)
	case domain.AccessSuperintendent:
		return resolveSuperintendent(ctx, user, filter, src)
	case domain.AccessManager:
		return resolveManager(ctx, user, filter, src)
	case domain.AccessSeller:
		return resolveSeller(ctx, user, filter, src)
	default:
		return emptyData(filter), nil
	}
}

// emptyData is the all-zero dashboard used whenever a resolver finds no scope.
func emptyData(filter DateFilter) *DashboardData {
	return &DashboardData{
		Subordinates:  []SubordinateMetrics{},
		SellerRanking: []SellerRanking{},
		Period:        resolvePeriod(filter),
	}
}

// buildRows computes one breakdown row per candidate, fanning the per-row
// queries out concurrently and joining before aggregation. Row order follows
// candidate order; results are attributed by index so sibling rows never mix.
// Any failed task fails the whole build: a partial breakdown would silently
// understate the totals.
func buildRows(ctx context.Context, n int, build func(ctx context.Context, i int) (SubordinateMetrics, error)) ([]SubordinateMetrics, error) {
	rows := make([]SubordinateMetrics, n)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			row, err := build(ctx, i)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// usersAtLevel filters a user list down to one access level.
func usersAtLevel(users []domain.User, level domain.AccessLevel) []domain.User {
	var out []domain.User
	for _, u := range users {
		if u.AccessLevel == level {
			out = append(out, u)
		}
	}
	return out
}

func userIDs(users []domain.User) []uuid.UUID {
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

// sellersInArea returns the sellers whose home area is the given area.
func sellersInArea(sellers []domain.User, areaID uuid.UUID) []domain.User {
	var out []domain.User
	for _, s := range sellers {
		if s.AreaID != nil && *s.AreaID == areaID {
			out = append(out, s)
		}
	}
	return out
}

// rankingFor returns the ranking rows belonging to the given sellers.
func rankingFor(ranking []SellerRanking, sellers []domain.User) []SellerRanking {
	ids := make(map[uuid.UUID]bool, len(sellers))
	for _, s := range sellers {
		ids[s.ID] = true
	}
	var out []SellerRanking
	for _, r := range ranking {
		if ids[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// scopeAreaIDs is the shared superintendent/manager fallback: managed areas
// when present, otherwise the user's own area.
func scopeAreaIDs(user *domain.SessionUser) []uuid.UUID {
	if len(user.ManagedAreaIDs) > 0 {
		return user.ManagedAreaIDs
	}
	if user.AreaID != nil {
		return []uuid.UUID{*user.AreaID}
	}
	return nil
}

// managerRows builds one area-scoped breakdown row per manager, shared by the
// director and superintendent resolvers. Managers without a home area are
// skipped: there is no area to attribute leads to. Per-row response time is
// the mean over the pre-fetched ranking of the area's sellers, not re-queried.
func managerRows(ctx context.Context, src DataSource, managers, sellers []domain.User, ranking []SellerRanking, filter DateFilter) ([]SubordinateMetrics, error) {
	var withArea []domain.User
	for _, m := range managers {
		if m.AreaID != nil {
			withArea = append(withArea, m)
		}
	}
	return buildRows(ctx, len(withArea), func(ctx context.Context, i int) (SubordinateMetrics, error) {
		manager := withArea[i]
		areaID := *manager.AreaID

		area, err := src.Area(ctx, areaID)
		if err != nil {
			return SubordinateMetrics{}, err
		}
		leads, err := src.LeadsByArea(ctx, areaID, filter)
		if err != nil {
			return SubordinateMetrics{}, err
		}

		name := manager.Name
		if area != nil {
			name = fmt.Sprintf("%s (%s)", manager.Name, area.Name)
		}
		return SubordinateMetrics{
			ID:              manager.ID,
			Name:            name,
			Type:            SubordinateManager,
			AccessLevel:     domain.AccessManager,
			Metrics:         CalculateMetrics(leads),
			AvgResponseTime: meanResponseTime(rankingFor(ranking, sellersInArea(sellers, areaID))),
		}, nil
	})
}

func sortBySoldDesc(rows []SubordinateMetrics) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Metrics.SoldCount > rows[j].Metrics.SoldCount
	})
}

func metricsOf(rows []SubordinateMetrics) []LeadMetrics {
	list := make([]LeadMetrics, len(rows))
	for i, r := range rows {
		list[i] = r.Metrics
	}
	return list
}
