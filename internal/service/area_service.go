package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/rbac"
	"github.com/imovelhub/crm-api/internal/repository"
	"go.uber.org/zap"
)

// AreaService manages sales territories.
type AreaService struct {
	areaRepo *repository.AreaRepository
	logger   *zap.Logger
}

func NewAreaService(areaRepo *repository.AreaRepository, logger *zap.Logger) *AreaService {
	return &AreaService{areaRepo: areaRepo, logger: logger}
}

// CreateAreaInput holds the fields for a new area.
type CreateAreaInput struct {
	Name      string     `json:"name" validate:"required,max=200"`
	CompanyID *uuid.UUID `json:"companyId"`
}

// Create adds an area. Directors create inside their own company; super
// admins must name the target company.
func (s *AreaService) Create(ctx context.Context, actor *domain.SessionUser, input CreateAreaInput) (*domain.Area, error) {
	if !rbac.IsDirectorOrHigher(actor.AccessLevel) {
		return nil, ErrPermissionDenied
	}

	companyID := input.CompanyID
	if !rbac.IsSuperAdmin(actor.AccessLevel) {
		companyID = actor.CompanyID
	}
	if companyID == nil {
		return nil, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}

	area := &domain.Area{
		Name:      input.Name,
		CompanyID: *companyID,
		IsActive:  true,
	}
	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, fmt.Errorf("failed to create area: %w", err)
	}

	s.logger.Info("area created",
		zap.String("area_id", area.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.String("created_by", actor.ID.String()),
	)
	return area, nil
}

// List returns the areas of the actor's company. Super admins pass the
// company explicitly.
func (s *AreaService) List(ctx context.Context, actor *domain.SessionUser, companyID *uuid.UUID) ([]domain.Area, error) {
	target := companyID
	if !rbac.IsSuperAdmin(actor.AccessLevel) {
		target = actor.CompanyID
	}
	if target == nil {
		return []domain.Area{}, nil
	}

	areas, err := s.areaRepo.ListByCompany(ctx, *target)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, nil
}
