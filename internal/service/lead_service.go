package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/dashboard"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/rbac"
	"github.com/imovelhub/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeadService manages the lead funnel within each caller's data scope.
type LeadService struct {
	leadRepo *repository.LeadRepository
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewLeadService(
	leadRepo *repository.LeadRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateLeadInput holds the fields for a new lead.
type CreateLeadInput struct {
	Name     string            `json:"name" validate:"required,max=200"`
	Phone    string            `json:"phone" validate:"max=50"`
	Email    string            `json:"email" validate:"omitempty,email"`
	Source   domain.LeadSource `json:"source"`
	Notes    string            `json:"notes"`
	SellerID uuid.UUID         `json:"sellerId" validate:"required"`
}

// Create registers a lead under the given seller. Company and area are
// attributed from the seller record at creation time and never change when
// the seller later moves.
func (s *LeadService) Create(ctx context.Context, actor *domain.SessionUser, input CreateLeadInput) (*domain.Lead, error) {
	seller, err := s.userRepo.GetByID(ctx, input.SellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seller not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to load seller: %w", err)
	}
	if seller.CompanyID == nil || seller.AreaID == nil {
		return nil, fmt.Errorf("%w: seller has no company or area", ErrInvalidInput)
	}
	if !rbac.CanViewUserData(actor, seller.ID, seller.CompanyID, seller.AreaID) {
		return nil, ErrPermissionDenied
	}

	source := input.Source
	if source == "" {
		source = domain.LeadSourceOther
	}

	lead := &domain.Lead{
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Status:    domain.LeadStatusLead,
		Source:    source,
		Notes:     input.Notes,
		SellerID:  seller.ID,
		AreaID:    *seller.AreaID,
		CompanyID: *seller.CompanyID,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.logger.Info("lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("seller_id", seller.ID.String()),
		zap.String("source", string(lead.Source)),
	)
	return lead, nil
}

// List returns the leads visible to the actor for a date filter.
func (s *LeadService) List(ctx context.Context, actor *domain.SessionUser, filter dashboard.DateFilter) ([]domain.Lead, error) {
	scope := rbac.BuildDataScope(actor)
	start, end := dashboard.DateRange(filter)
	leads, err := s.leadRepo.ListScoped(ctx, scope, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// UpdateStatus moves a lead to a new funnel stage.
func (s *LeadService) UpdateStatus(ctx context.Context, actor *domain.SessionUser, id uuid.UUID, status domain.LeadStatus) (*domain.Lead, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown lead status %q", ErrInvalidInput, status)
	}

	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}

	companyID := lead.CompanyID
	areaID := lead.AreaID
	if !rbac.CanViewUserData(actor, lead.SellerID, &companyID, &areaID) {
		return nil, ErrPermissionDenied
	}

	if err := s.leadRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	lead.Status = status

	s.logger.Info("lead status updated",
		zap.String("lead_id", id.String()),
		zap.String("status", string(status)),
		zap.String("updated_by", actor.ID.String()),
	)
	return lead, nil
}
