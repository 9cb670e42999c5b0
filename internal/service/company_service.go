package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/rbac"
	"github.com/imovelhub/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyService manages tenant agencies. All mutations are super admin only.
type CompanyService struct {
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewCompanyService(companyRepo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, logger: logger}
}

// CreateCompanyInput holds the fields for a new company.
type CreateCompanyInput struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Slug        string             `json:"slug" validate:"required,max=100,alphanum"`
	LicenseType domain.LicenseType `json:"licenseType"`
}

func (s *CompanyService) Create(ctx context.Context, actor *domain.SessionUser, input CreateCompanyInput) (*domain.Company, error) {
	if !rbac.IsSuperAdmin(actor.AccessLevel) {
		return nil, ErrPermissionDenied
	}

	license := input.LicenseType
	if license == "" {
		license = domain.LicenseBasic
	}

	company := &domain.Company{
		Name:        input.Name,
		Slug:        strings.ToLower(input.Slug),
		LicenseType: license,
		IsActive:    true,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("slug", company.Slug),
	)
	return company, nil
}

// Get returns a company the actor may see: their own, or any for super admins.
func (s *CompanyService) Get(ctx context.Context, actor *domain.SessionUser, id uuid.UUID) (*domain.Company, error) {
	if !rbac.IsSuperAdmin(actor.AccessLevel) {
		if actor.CompanyID == nil || *actor.CompanyID != id {
			return nil, ErrPermissionDenied
		}
	}

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return company, nil
}

// List returns all active companies. Super admin only.
func (s *CompanyService) List(ctx context.Context, actor *domain.SessionUser) ([]domain.Company, error) {
	if !rbac.IsSuperAdmin(actor.AccessLevel) {
		return nil, ErrPermissionDenied
	}
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}
