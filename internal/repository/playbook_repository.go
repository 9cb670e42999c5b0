package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"gorm.io/gorm"
)

type PlaybookRepository struct {
	db *gorm.DB
}

func NewPlaybookRepository(db *gorm.DB) *PlaybookRepository {
	return &PlaybookRepository{db: db}
}

func (r *PlaybookRepository) Create(ctx context.Context, score *domain.PlaybookScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

// AvgScores returns each seller's mean playbook score. Sellers with no
// evaluated conversations are absent from the map.
func (r *PlaybookRepository) AvgScores(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(sellerIDs) == 0 {
		return map[uuid.UUID]float64{}, nil
	}

	type row struct {
		SellerID uuid.UUID
		Avg      float64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.PlaybookScore{}).
		Select("seller_id, AVG(score) as avg").
		Where("seller_id IN ?", sellerIDs).
		Group("seller_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]float64, len(rows))
	for _, r := range rows {
		out[r.SellerID] = r.Avg
	}
	return out, nil
}
