package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/rbac"
	"github.com/imovelhub/crm-api/internal/repository"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService manages user accounts and builds session snapshots for the auth
// middleware.
type UserService struct {
	userRepo    *repository.UserRepository
	companyRepo *repository.CompanyRepository
	areaRepo    *repository.AreaRepository
	logger      *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	companyRepo *repository.CompanyRepository,
	areaRepo *repository.AreaRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		areaRepo:    areaRepo,
		logger:      logger,
	}
}

// SessionByID loads a fresh session snapshot for an authenticated user id.
// Implements auth.SessionLoader.
func (s *UserService) SessionByID(ctx context.Context, id uuid.UUID) (*domain.SessionUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, ErrAccountInactive
	}

	companyName := ""
	if user.CompanyID != nil {
		company, err := s.companyRepo.GetByID(ctx, *user.CompanyID)
		if err == nil {
			companyName = company.Name
		}
	}
	return domain.SessionFromUser(user, companyName), nil
}

// CreateUserInput holds the fields for a new user account.
type CreateUserInput struct {
	Name           string             `json:"name" validate:"required,max=200"`
	Email          string             `json:"email" validate:"required,email"`
	Password       string             `json:"password" validate:"required,min=8"`
	AccessLevel    domain.AccessLevel `json:"accessLevel" validate:"required"`
	CompanyID      *uuid.UUID         `json:"companyId"`
	AreaID         *uuid.UUID         `json:"areaId"`
	ManagedAreaIDs []uuid.UUID        `json:"managedAreaIds"`
}

// Create adds a user account. The actor must rank above the new account's
// level, and non super admins can only create accounts inside their own
// company.
func (s *UserService) Create(ctx context.Context, actor *domain.SessionUser, input CreateUserInput) (*domain.User, error) {
	if !input.AccessLevel.IsValid() {
		return nil, ErrInvalidAccessLevel
	}
	if !rbac.CanManageUser(actor, input.AccessLevel) {
		return nil, ErrPermissionDenied
	}

	companyID := input.CompanyID
	if !rbac.IsSuperAdmin(actor.AccessLevel) {
		// Non super admins always create inside their own company.
		companyID = actor.CompanyID
	}
	if companyID == nil && input.AccessLevel != domain.AccessSuperAdmin {
		return nil, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	managed := make(pq.StringArray, 0, len(input.ManagedAreaIDs))
	for _, id := range input.ManagedAreaIDs {
		managed = append(managed, id.String())
	}

	user := &domain.User{
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   hash,
		AccessLevel:    input.AccessLevel,
		Status:         domain.UserStatusActive,
		CompanyID:      companyID,
		AreaID:         input.AreaID,
		ManagedAreaIDs: managed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("access_level", string(user.AccessLevel)),
		zap.String("created_by", actor.ID.String()),
	)
	return user, nil
}

// List returns the users the actor may see, per their data scope.
func (s *UserService) List(ctx context.Context, actor *domain.SessionUser) ([]domain.User, error) {
	scope := rbac.BuildDataScope(actor)
	users, err := s.userRepo.ListScoped(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns one user, subject to the actor's visibility.
func (s *UserService) Get(ctx context.Context, actor *domain.SessionUser, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !rbac.CanViewUserData(actor, user.ID, user.CompanyID, user.AreaID) {
		return nil, ErrPermissionDenied
	}
	return user, nil
}

// Deactivate disables an account. Existing tokens stop working on the next
// request because the middleware reloads the session.
func (s *UserService) Deactivate(ctx context.Context, actor *domain.SessionUser, id uuid.UUID) error {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if !rbac.CanManageUser(actor, user.AccessLevel) {
		return ErrPermissionDenied
	}
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	s.logger.Info("user deactivated",
		zap.String("user_id", id.String()),
		zap.String("deactivated_by", actor.ID.String()),
	)
	return nil
}
