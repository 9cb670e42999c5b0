package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/config"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(&config.JWTConfig{
		Secret: "test-signing-secret",
		Issuer: "imovelhub-crm-api",
		TTL:    ttl,
	})
}

func testSessionUser() *domain.SessionUser {
	companyID := uuid.New()
	return &domain.SessionUser{
		ID:          uuid.New(),
		Name:        "Ana Souza",
		Email:       "ana@imovelhub.com.br",
		AccessLevel: domain.AccessManager,
		CompanyID:   &companyID,
	}
}

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := newTestTokenManager(time.Hour)
	user := testSessionUser()

	token, err := tm.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.AccessManager, claims.AccessLevel)
	require.NotNil(t, claims.CompanyID)
	assert.Equal(t, *user.CompanyID, *claims.CompanyID)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := newTestTokenManager(-time.Minute)

	token, err := tm.Generate(testSessionUser())
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuing := newTestTokenManager(time.Hour)
	validating := NewTokenManager(&config.JWTConfig{
		Secret: "a-different-secret",
		Issuer: "imovelhub-crm-api",
		TTL:    time.Hour,
	})

	token, err := issuing.Generate(testSessionUser())
	require.NoError(t, err)

	_, err = validating.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsWrongIssuer(t *testing.T) {
	issuing := NewTokenManager(&config.JWTConfig{
		Secret: "test-signing-secret",
		Issuer: "another-service",
		TTL:    time.Hour,
	})
	validating := newTestTokenManager(time.Hour)

	token, err := issuing.Generate(testSessionUser())
	require.NoError(t, err)

	_, err = validating.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := newTestTokenManager(time.Hour)

	_, err := tm.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
