package rbac

import (
	"testing"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVisibilityFor_Matrix(t *testing.T) {
	tests := []struct {
		level    domain.AccessLevel
		expected domain.Visibility
	}{
		{domain.AccessSuperAdmin, domain.Visibility{CanSeeOwnData: true, CanSeeTeamData: true, CanSeeManagedAreas: true, CanSeeAllCompany: true, CanSeeAllCompanies: true}},
		{domain.AccessDirector, domain.Visibility{CanSeeOwnData: true, CanSeeTeamData: true, CanSeeManagedAreas: true, CanSeeAllCompany: true}},
		{domain.AccessSuperintendent, domain.Visibility{CanSeeOwnData: true, CanSeeTeamData: true, CanSeeManagedAreas: true}},
		{domain.AccessManager, domain.Visibility{CanSeeOwnData: true, CanSeeTeamData: true, CanSeeManagedAreas: true}},
		{domain.AccessSeller, domain.Visibility{CanSeeOwnData: true}},
		{domain.AccessLevel("UNKNOWN"), domain.Visibility{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.expected, VisibilityFor(tt.level))
		})
	}
}

func TestHasAccessLevelOrHigher(t *testing.T) {
	assert.True(t, HasAccessLevelOrHigher(domain.AccessSuperAdmin, domain.AccessDirector))
	assert.True(t, HasAccessLevelOrHigher(domain.AccessManager, domain.AccessManager))
	assert.False(t, HasAccessLevelOrHigher(domain.AccessSeller, domain.AccessManager))
	// Unknown levels rank below everything real.
	assert.False(t, HasAccessLevelOrHigher(domain.AccessLevel("X"), domain.AccessSeller))
}

func TestIsDirectorOrHigher(t *testing.T) {
	assert.True(t, IsDirectorOrHigher(domain.AccessSuperAdmin))
	assert.True(t, IsDirectorOrHigher(domain.AccessDirector))
	assert.False(t, IsDirectorOrHigher(domain.AccessSuperintendent))
}

func TestIsManagerOrHigher(t *testing.T) {
	assert.True(t, IsManagerOrHigher(domain.AccessManager))
	assert.False(t, IsManagerOrHigher(domain.AccessSeller))
}

func TestCanViewUserData(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()
	areaID := uuid.New()
	otherAreaID := uuid.New()
	targetID := uuid.New()

	t.Run("super admin sees across companies", func(t *testing.T) {
		viewer := &domain.SessionUser{ID: uuid.New(), AccessLevel: domain.AccessSuperAdmin}
		assert.True(t, CanViewUserData(viewer, targetID, &otherCompanyID, &otherAreaID))
	})

	t.Run("everyone sees themselves", func(t *testing.T) {
		viewer := &domain.SessionUser{ID: targetID, AccessLevel: domain.AccessSeller, CompanyID: &companyID}
		assert.True(t, CanViewUserData(viewer, targetID, &companyID, &areaID))
	})

	t.Run("director sees whole company", func(t *testing.T) {
		viewer := &domain.SessionUser{ID: uuid.New(), AccessLevel: domain.AccessDirector, CompanyID: &companyID}
		assert.True(t, CanViewUserData(viewer, targetID, &companyID, &areaID))
	})

	t.Run("director blocked across companies", func(t *testing.T) {
		viewer := &domain.SessionUser{ID: uuid.New(), AccessLevel: domain.AccessDirector, CompanyID: &companyID}
		assert.False(t, CanViewUserData(viewer, targetID, &otherCompanyID, &areaID))
	})

	t.Run("superintendent sees managed area", func(t *testing.T) {
		viewer := &domain.SessionUser{
			ID:             uuid.New(),
			AccessLevel:    domain.AccessSuperintendent,
			CompanyID:      &companyID,
			ManagedAreaIDs: []uuid.UUID{areaID},
		}
		assert.True(t, CanViewUserData(viewer, targetID, &companyID, &areaID))
		assert.False(t, CanViewUserData(viewer, targetID, &companyID, &otherAreaID))
	})

	t.Run("manager sees own area team", func(t *testing.T) {
		viewer := &domain.SessionUser{
			ID:          uuid.New(),
			AccessLevel: domain.AccessManager,
			CompanyID:   &companyID,
			AreaID:      &areaID,
		}
		assert.True(t, CanViewUserData(viewer, targetID, &companyID, &areaID))
		assert.False(t, CanViewUserData(viewer, targetID, &companyID, &otherAreaID))
	})

	t.Run("seller sees only themselves", func(t *testing.T) {
		viewer := &domain.SessionUser{
			ID:          uuid.New(),
			AccessLevel: domain.AccessSeller,
			CompanyID:   &companyID,
			AreaID:      &areaID,
		}
		assert.False(t, CanViewUserData(viewer, targetID, &companyID, &areaID))
	})

	t.Run("target without company is invisible to others", func(t *testing.T) {
		viewer := &domain.SessionUser{ID: uuid.New(), AccessLevel: domain.AccessDirector, CompanyID: &companyID}
		assert.False(t, CanViewUserData(viewer, targetID, nil, nil))
	})
}

func TestCanManageUser(t *testing.T) {
	superAdmin := &domain.SessionUser{AccessLevel: domain.AccessSuperAdmin}
	director := &domain.SessionUser{AccessLevel: domain.AccessDirector}
	manager := &domain.SessionUser{AccessLevel: domain.AccessManager}
	seller := &domain.SessionUser{AccessLevel: domain.AccessSeller}

	assert.True(t, CanManageUser(superAdmin, domain.AccessSuperAdmin))
	assert.True(t, CanManageUser(director, domain.AccessManager))
	assert.False(t, CanManageUser(director, domain.AccessDirector))
	assert.True(t, CanManageUser(manager, domain.AccessSeller))
	assert.False(t, CanManageUser(seller, domain.AccessSeller))
}
