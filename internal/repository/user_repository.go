package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListScoped returns active users visible within the given data scope.
func (r *UserRepository) ListScoped(ctx context.Context, scope domain.DataScope) ([]domain.User, error) {
	var users []domain.User
	query := ApplyDataScope(r.db.WithContext(ctx), scope).
		Where("status = ?", domain.UserStatusActive).
		Order("name ASC")
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, domain.UserStatusActive).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]domain.User, error) {
	if len(areaIDs) == 0 {
		return []domain.User{}, nil
	}
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("area_id IN ? AND status = ?", areaIDs, domain.UserStatusActive).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// HasLevelInCompany reports whether any active user at the given access level
// exists in the company.
func (r *UserRepository) HasLevelInCompany(ctx context.Context, companyID uuid.UUID, level domain.AccessLevel) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("company_id = ? AND access_level = ? AND status = ?", companyID, level, domain.UserStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("status", domain.UserStatusInactive).Error
}
