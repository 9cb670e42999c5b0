package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"gorm.io/gorm"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// CountNewSince counts conversations opened by the given sellers since the
// cutoff, total and per seller.
func (r *ConversationRepository) CountNewSince(ctx context.Context, sellerIDs []uuid.UUID, since time.Time) (int, map[uuid.UUID]int, error) {
	if len(sellerIDs) == 0 {
		return 0, map[uuid.UUID]int{}, nil
	}

	type row struct {
		SellerID uuid.UUID
		Count    int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Conversation{}).
		Select("seller_id, COUNT(*) as count").
		Where("seller_id IN ? AND created_at >= ?", sellerIDs, since).
		Group("seller_id").
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}

	perSeller := make(map[uuid.UUID]int, len(rows))
	total := 0
	for _, r := range rows {
		perSeller[r.SellerID] = r.Count
		total += r.Count
	}
	return total, perSeller, nil
}

// AvgResponseTimes returns each seller's mean response time in seconds,
// averaged over their messages that answered a lead message.
func (r *ConversationRepository) AvgResponseTimes(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(sellerIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	type row struct {
		SellerID uuid.UUID
		Avg      float64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("messages").
		Select("conversations.seller_id as seller_id, AVG(messages.response_time) as avg").
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.seller_id IN ?", sellerIDs).
		Where("messages.response_time IS NOT NULL").
		Group("conversations.seller_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		out[r.SellerID] = int(r.Avg)
	}
	return out, nil
}

// CountAwaitingReply counts conversations where the last message came from the
// lead and the seller has not answered, total and per seller. The optional
// olderThan cutoff restricts to conversations waiting since before that time,
// which is how the 2h/24h SLA counters are produced.
func (r *ConversationRepository) CountAwaitingReply(ctx context.Context, sellerIDs []uuid.UUID, olderThan *time.Time) (int, map[uuid.UUID]int, error) {
	if len(sellerIDs) == 0 {
		return 0, map[uuid.UUID]int{}, nil
	}

	type row struct {
		SellerID uuid.UUID
		Count    int
	}
	query := r.db.WithContext(ctx).Model(&domain.Conversation{}).
		Select("seller_id, COUNT(*) as count").
		Where("seller_id IN ?", sellerIDs).
		Where("status IN ?", []domain.ConversationStatus{domain.ConversationActive, domain.ConversationWaitingResponse}).
		Where("last_lead_message IS NOT NULL").
		Where("last_seller_message IS NULL OR last_seller_message < last_lead_message")
	if olderThan != nil {
		query = query.Where("last_lead_message < ?", *olderThan)
	}

	var rows []row
	if err := query.Group("seller_id").Scan(&rows).Error; err != nil {
		return 0, nil, err
	}

	perSeller := make(map[uuid.UUID]int, len(rows))
	total := 0
	for _, r := range rows {
		perSeller[r.SellerID] = r.Count
		total += r.Count
	}
	return total, perSeller, nil
}

// WeightedAvgResponseTime returns the mean response time over all answered
// messages of the given sellers. Unlike AvgResponseTimes this is weighted by
// message volume: busy sellers influence the team figure proportionally.
func (r *ConversationRepository) WeightedAvgResponseTime(ctx context.Context, sellerIDs []uuid.UUID) (int, error) {
	if len(sellerIDs) == 0 {
		return 0, nil
	}

	var avg *float64
	err := r.db.WithContext(ctx).
		Table("messages").
		Select("AVG(messages.response_time)").
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.seller_id IN ?", sellerIDs).
		Where("messages.response_time IS NOT NULL").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return int(*avg), nil
}
