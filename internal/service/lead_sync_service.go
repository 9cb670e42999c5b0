package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/repository"
	"github.com/imovelhub/crm-api/internal/warehouse"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeadSyncService imports leads from the legacy CRM warehouse into the local
// database. Imports are idempotent: leads are keyed by their hubspot id and
// local status changes always win over re-imports.
type LeadSyncService struct {
	warehouse *warehouse.Client
	leadRepo  *repository.LeadRepository
	userRepo  *repository.UserRepository
	logger    *zap.Logger

	mu       sync.Mutex
	lastSync time.Time
}

func NewLeadSyncService(
	wh *warehouse.Client,
	leadRepo *repository.LeadRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *LeadSyncService {
	return &LeadSyncService{
		warehouse: wh,
		leadRepo:  leadRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// ImportLegacyLeads fetches leads changed since the previous run and upserts
// them locally. Leads whose seller email has no local account, or whose
// seller lacks a company and area assignment, are skipped and counted.
// Returns counts for imported and skipped leads.
func (s *LeadSyncService) ImportLegacyLeads(ctx context.Context) (imported int, skipped int, err error) {
	if !s.warehouse.IsEnabled() {
		return 0, 0, nil
	}

	s.mu.Lock()
	since := s.lastSync
	s.mu.Unlock()

	start := time.Now()

	legacyLeads, err := s.warehouse.FetchLeadsUpdatedSince(ctx, since)
	if err != nil {
		return 0, 0, err
	}

	// Seller lookups repeat heavily across a batch; cache them per run.
	sellers := make(map[string]*domain.User)

	var newest time.Time
	for _, legacy := range legacyLeads {
		seller, ok := sellers[legacy.SellerEmail]
		if !ok {
			seller, err = s.userRepo.GetByEmail(ctx, legacy.SellerEmail)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return imported, skipped, err
				}
				seller = nil
			}
			sellers[legacy.SellerEmail] = seller
		}

		if seller == nil || seller.CompanyID == nil || seller.AreaID == nil {
			s.logger.Debug("skipping legacy lead without assignable seller",
				zap.String("hubspot_id", legacy.HubspotID),
				zap.String("seller_email", legacy.SellerEmail),
			)
			skipped++
			continue
		}

		hubspotID := legacy.HubspotID
		syncedAt := time.Now()
		lead := &domain.Lead{
			Name:            legacy.Name,
			Phone:           legacy.Phone,
			Email:           legacy.Email,
			Status:          domain.LeadStatusLead,
			Source:          domain.LeadSourceHubSpot,
			SellerID:        seller.ID,
			AreaID:          *seller.AreaID,
			CompanyID:       *seller.CompanyID,
			HubspotID:       &hubspotID,
			HubspotSyncedAt: &syncedAt,
		}

		if err := s.leadRepo.UpsertByLegacyID(ctx, lead); err != nil {
			return imported, skipped, err
		}
		imported++

		if legacy.UpdatedAt.After(newest) {
			newest = legacy.UpdatedAt
		}
	}

	if !newest.IsZero() {
		s.mu.Lock()
		if newest.After(s.lastSync) {
			s.lastSync = newest
		}
		s.mu.Unlock()
	}

	s.logger.Info("legacy lead import completed",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Time("since", since),
		zap.Duration("duration", time.Since(start)),
	)

	return imported, skipped, nil
}
