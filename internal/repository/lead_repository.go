package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListScoped returns the leads visible within a data scope, newest first.
func (r *LeadRepository) ListScoped(ctx context.Context, scope domain.DataScope, start, end time.Time) ([]domain.Lead, error) {
	var leads []domain.Lead
	query := ApplyLeadScope(r.db.WithContext(ctx), scope).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC")
	if err := query.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *LeadRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]domain.Lead, error) {
	return r.listWhere(ctx, "company_id = ?", []interface{}{companyID}, start, end)
}

func (r *LeadRepository) ListByArea(ctx context.Context, areaID uuid.UUID, start, end time.Time) ([]domain.Lead, error) {
	return r.listWhere(ctx, "area_id = ?", []interface{}{areaID}, start, end)
}

func (r *LeadRepository) ListByAreas(ctx context.Context, areaIDs []uuid.UUID, start, end time.Time) ([]domain.Lead, error) {
	if len(areaIDs) == 0 {
		return []domain.Lead{}, nil
	}
	return r.listWhere(ctx, "area_id IN ?", []interface{}{areaIDs}, start, end)
}

func (r *LeadRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, start, end time.Time) ([]domain.Lead, error) {
	return r.listWhere(ctx, "seller_id = ?", []interface{}{sellerID}, start, end)
}

func (r *LeadRepository) listWhere(ctx context.Context, cond string, args []interface{}, start, end time.Time) ([]domain.Lead, error) {
	var leads []domain.Lead
	err := r.db.WithContext(ctx).
		Where(cond, args...).
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

// CountBySeller returns the all-time lead count per seller, used by the
// ranking's conversion rate.
func (r *LeadRepository) CountBySeller(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]int, map[uuid.UUID]int, error) {
	if len(sellerIDs) == 0 {
		return map[uuid.UUID]int{}, map[uuid.UUID]int{}, nil
	}

	type row struct {
		SellerID uuid.UUID
		Status   domain.LeadStatus
		Count    int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Select("seller_id, status, COUNT(*) as count").
		Where("seller_id IN ?", sellerIDs).
		Group("seller_id, status").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	totals := make(map[uuid.UUID]int, len(sellerIDs))
	sold := make(map[uuid.UUID]int, len(sellerIDs))
	for _, r := range rows {
		totals[r.SellerID] += r.Count
		if r.Status == domain.LeadStatusSold {
			sold[r.SellerID] += r.Count
		}
	}
	return totals, sold, nil
}

// UpsertByLegacyID inserts or refreshes a lead imported from the legacy CRM,
// keyed by its hubspot id. Local status changes win over re-imports: only
// contact fields are refreshed on conflict.
func (r *LeadRepository) UpsertByLegacyID(ctx context.Context, lead *domain.Lead) error {
	if lead.HubspotID == nil {
		return errors.New("legacy lead missing hubspot id")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "hubspot_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "phone", "email", "hubspot_synced_at", "updated_at",
		}),
	}).Create(lead).Error
}
