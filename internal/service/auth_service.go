package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/imovelhub/crm-api/internal/auth"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/imovelhub/crm-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles credential checks and session token issuance.
type AuthService struct {
	userRepo    *repository.UserRepository
	companyRepo *repository.CompanyRepository
	tokens      *auth.TokenManager
	logger      *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	companyRepo *repository.CompanyRepository,
	tokens *auth.TokenManager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string              `json:"token"`
	User  *domain.SessionUser `json:"user"`
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password return the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	if user.Status != domain.UserStatusActive {
		return nil, ErrAccountInactive
	}

	session, err := s.buildSession(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(session)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("access_level", string(user.AccessLevel)),
	)

	return &LoginResult{Token: token, User: session}, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) buildSession(ctx context.Context, user *domain.User) (*domain.SessionUser, error) {
	companyName := ""
	if user.CompanyID != nil {
		company, err := s.companyRepo.GetByID(ctx, *user.CompanyID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load company: %w", err)
		}
		if company != nil {
			companyName = company.Name
		}
	}
	return domain.SessionFromUser(user, companyName), nil
}
