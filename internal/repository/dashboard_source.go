package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/dashboard"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/presence"
)

// DashboardSource implements dashboard.DataSource on top of the gorm
// repositories and the redis presence tracker. It is the only production
// implementation; the resolution engine itself never touches gorm.
type DashboardSource struct {
	leads         *LeadRepository
	users         *UserRepository
	areas         *AreaRepository
	conversations *ConversationRepository
	playbooks     *PlaybookRepository
	presence      *presence.Tracker
}

func NewDashboardSource(
	leads *LeadRepository,
	users *UserRepository,
	areas *AreaRepository,
	conversations *ConversationRepository,
	playbooks *PlaybookRepository,
	tracker *presence.Tracker,
) *DashboardSource {
	return &DashboardSource{
		leads:         leads,
		users:         users,
		areas:         areas,
		conversations: conversations,
		playbooks:     playbooks,
		presence:      tracker,
	}
}

func (s *DashboardSource) LeadsByCompany(ctx context.Context, companyID uuid.UUID, filter dashboard.DateFilter) ([]domain.Lead, error) {
	start, end := dashboard.DateRange(filter)
	return s.leads.ListByCompany(ctx, companyID, start, end)
}

func (s *DashboardSource) LeadsByArea(ctx context.Context, areaID uuid.UUID, filter dashboard.DateFilter) ([]domain.Lead, error) {
	start, end := dashboard.DateRange(filter)
	return s.leads.ListByArea(ctx, areaID, start, end)
}

func (s *DashboardSource) LeadsByAreas(ctx context.Context, areaIDs []uuid.UUID, filter dashboard.DateFilter) ([]domain.Lead, error) {
	start, end := dashboard.DateRange(filter)
	return s.leads.ListByAreas(ctx, areaIDs, start, end)
}

func (s *DashboardSource) LeadsBySeller(ctx context.Context, sellerID uuid.UUID, filter dashboard.DateFilter) ([]domain.Lead, error) {
	start, end := dashboard.DateRange(filter)
	return s.leads.ListBySeller(ctx, sellerID, start, end)
}

func (s *DashboardSource) UsersByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.User, error) {
	return s.users.ListByCompany(ctx, companyID)
}

func (s *DashboardSource) UsersByArea(ctx context.Context, areaID uuid.UUID) ([]domain.User, error) {
	return s.users.ListByAreas(ctx, []uuid.UUID{areaID})
}

func (s *DashboardSource) UsersByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]domain.User, error) {
	return s.users.ListByAreas(ctx, areaIDs)
}

func (s *DashboardSource) AreasByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Area, error) {
	return s.areas.ListByCompany(ctx, companyID)
}

func (s *DashboardSource) Area(ctx context.Context, areaID uuid.UUID) (*domain.Area, error) {
	return s.areas.GetByID(ctx, areaID)
}

func (s *DashboardSource) HasLevelInCompany(ctx context.Context, companyID uuid.UUID, level domain.AccessLevel) (bool, error) {
	return s.users.HasLevelInCompany(ctx, companyID, level)
}

// TeamMetrics aggregates the conversation-side performance counters for a set
// of sellers. New-conversation counts cover the current calendar day; response
// time and playbook figures are all-time.
func (s *DashboardSource) TeamMetrics(ctx context.Context, sellerIDs []uuid.UUID) (dashboard.TeamMetrics, error) {
	var metrics dashboard.TeamMetrics
	if len(sellerIDs) == 0 {
		return metrics, nil
	}

	online, err := s.presence.OnlineAmong(ctx, sellerIDs)
	if err != nil {
		return metrics, err
	}
	for _, isOnline := range online {
		if isOnline {
			metrics.SellersOnline++
		} else {
			metrics.SellersOffline++
		}
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	newTotal, _, err := s.conversations.CountNewSince(ctx, sellerIDs, startOfToday)
	if err != nil {
		return metrics, err
	}
	metrics.NewConversations = newTotal

	responseTimes, err := s.conversations.AvgResponseTimes(ctx, sellerIDs)
	if err != nil {
		return metrics, err
	}
	if len(responseTimes) > 0 {
		sum := 0
		for _, rt := range responseTimes {
			sum += rt
		}
		metrics.AvgResponseTime = sum / len(responseTimes)
	}

	weighted, err := s.conversations.WeightedAvgResponseTime(ctx, sellerIDs)
	if err != nil {
		return metrics, err
	}
	metrics.AvgWeightedResponseTime = weighted

	scores, err := s.playbooks.AvgScores(ctx, sellerIDs)
	if err != nil {
		return metrics, err
	}
	if len(scores) > 0 {
		sum := 0.0
		for _, score := range scores {
			sum += score
		}
		metrics.AvgPlaybookScore = sum / float64(len(scores))
	}

	awaiting, _, err := s.conversations.CountAwaitingReply(ctx, sellerIDs, nil)
	if err != nil {
		return metrics, err
	}
	metrics.LeadsWithoutResponse = awaiting

	cutoff2h := now.Add(-2 * time.Hour)
	over2h, _, err := s.conversations.CountAwaitingReply(ctx, sellerIDs, &cutoff2h)
	if err != nil {
		return metrics, err
	}
	metrics.ClientsNoResponse2h = over2h

	cutoff24h := now.Add(-24 * time.Hour)
	over24h, _, err := s.conversations.CountAwaitingReply(ctx, sellerIDs, &cutoff24h)
	if err != nil {
		return metrics, err
	}
	metrics.ClientsNoResponse24h = over24h

	return metrics, nil
}

// SellerRanking builds the composite-scored ranking for a set of sellers,
// ordered best first.
func (s *DashboardSource) SellerRanking(ctx context.Context, sellerIDs []uuid.UUID) ([]dashboard.SellerRanking, error) {
	if len(sellerIDs) == 0 {
		return []dashboard.SellerRanking{}, nil
	}

	online, err := s.presence.OnlineAmong(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	_, newPerSeller, err := s.conversations.CountNewSince(ctx, sellerIDs, startOfToday)
	if err != nil {
		return nil, err
	}
	responseTimes, err := s.conversations.AvgResponseTimes(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}
	scores, err := s.playbooks.AvgScores(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}
	_, awaitingPerSeller, err := s.conversations.CountAwaitingReply(ctx, sellerIDs, nil)
	if err != nil {
		return nil, err
	}
	totals, sold, err := s.leads.CountBySeller(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}

	ranking := make([]dashboard.SellerRanking, 0, len(sellerIDs))
	for _, id := range sellerIDs {
		seller, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		ranking = append(ranking, dashboard.SellerRanking{
			ID:                   id,
			Name:                 seller.Name,
			IsOnline:             online[id],
			NewConversations:     newPerSeller[id],
			AvgResponseTime:      responseTimes[id],
			PlaybookScore:        scores[id],
			LeadsWithoutResponse: awaitingPerSeller[id],
			TotalLeads:           totals[id],
			ConversionRate:       dashboard.ConversionRate(sold[id], totals[id]),
		})
	}

	return dashboard.RankSellers(ranking), nil
}
