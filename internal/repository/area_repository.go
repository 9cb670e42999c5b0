package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"gorm.io/gorm"
)

type AreaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) Create(ctx context.Context, area *domain.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *AreaRepository) Update(ctx context.Context, area *domain.Area) error {
	return r.db.WithContext(ctx).Save(area).Error
}

// GetByID returns nil without error when the area does not exist, so callers
// dealing with possibly-stale references do not have to unwrap gorm errors.
func (r *AreaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Area, error) {
	var area domain.Area
	err := r.db.WithContext(ctx).First(&area, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *AreaRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Area, error) {
	var areas []domain.Area
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("name ASC").
		Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}
