package rbac

import (
	"testing"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDataScope_SuperAdminUnconstrained(t *testing.T) {
	scope := BuildDataScope(&domain.SessionUser{
		ID:          uuid.New(),
		AccessLevel: domain.AccessSuperAdmin,
	})

	assert.True(t, scope.CompanyIDs.All())
	assert.True(t, scope.AreaIDs.All())
	assert.True(t, scope.UserIDs.All())
}

func TestBuildDataScope_OrphanedUserSelfOnly(t *testing.T) {
	id := uuid.New()
	scope := BuildDataScope(&domain.SessionUser{
		ID:          id,
		AccessLevel: domain.AccessDirector,
	})

	assert.False(t, scope.CompanyIDs.All())
	assert.Empty(t, scope.CompanyIDs)
	assert.Empty(t, scope.AreaIDs)
	require.Len(t, scope.UserIDs, 1)
	assert.Equal(t, id, scope.UserIDs[0])
}

func TestBuildDataScope_DirectorWholeCompany(t *testing.T) {
	companyID := uuid.New()
	scope := BuildDataScope(&domain.SessionUser{
		ID:          uuid.New(),
		AccessLevel: domain.AccessDirector,
		CompanyID:   &companyID,
	})

	require.Len(t, scope.CompanyIDs, 1)
	assert.Equal(t, companyID, scope.CompanyIDs[0])
	assert.True(t, scope.AreaIDs.All())
	assert.True(t, scope.UserIDs.All())
}

func TestBuildDataScope_SuperintendentAreaUnion(t *testing.T) {
	companyID := uuid.New()
	ownArea := uuid.New()
	managedA := uuid.New()

	scope := BuildDataScope(&domain.SessionUser{
		ID:             uuid.New(),
		AccessLevel:    domain.AccessSuperintendent,
		CompanyID:      &companyID,
		AreaID:         &ownArea,
		ManagedAreaIDs: []uuid.UUID{managedA, ownArea}, // overlap with own area
	})

	require.Len(t, scope.AreaIDs, 2)
	assert.True(t, scope.AreaIDs.Contains(ownArea))
	assert.True(t, scope.AreaIDs.Contains(managedA))
	assert.True(t, scope.UserIDs.All())
}

func TestBuildDataScope_ManagerWithoutAnyAreaSelfOnly(t *testing.T) {
	companyID := uuid.New()
	id := uuid.New()

	scope := BuildDataScope(&domain.SessionUser{
		ID:          id,
		AccessLevel: domain.AccessManager,
		CompanyID:   &companyID,
	})

	require.Len(t, scope.CompanyIDs, 1)
	assert.Empty(t, scope.AreaIDs)
	assert.False(t, scope.AreaIDs.All())
	require.Len(t, scope.UserIDs, 1)
	assert.Equal(t, id, scope.UserIDs[0])
}

func TestBuildDataScope_SellerOwnAreaOnly(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()
	notManaged := uuid.New()

	scope := BuildDataScope(&domain.SessionUser{
		ID:             uuid.New(),
		AccessLevel:    domain.AccessSeller,
		CompanyID:      &companyID,
		AreaID:         &areaID,
		ManagedAreaIDs: []uuid.UUID{notManaged}, // sellers never gain managed areas
	})

	require.Len(t, scope.AreaIDs, 1)
	assert.Equal(t, areaID, scope.AreaIDs[0])
	assert.False(t, scope.AreaIDs.Contains(notManaged))
}

func TestBuildDataScope_Idempotent(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()
	user := &domain.SessionUser{
		ID:             uuid.New(),
		AccessLevel:    domain.AccessSuperintendent,
		CompanyID:      &companyID,
		ManagedAreaIDs: []uuid.UUID{areaID},
	}

	first := BuildDataScope(user)
	second := BuildDataScope(user)

	assert.Equal(t, first, second)
}

func TestBuildDataScope_UnknownLevelSelfOnly(t *testing.T) {
	companyID := uuid.New()
	id := uuid.New()

	scope := BuildDataScope(&domain.SessionUser{
		ID:          id,
		AccessLevel: domain.AccessLevel("CONTRACTOR"),
		CompanyID:   &companyID,
	})

	require.Len(t, scope.UserIDs, 1)
	assert.Equal(t, id, scope.UserIDs[0])
}

func TestIDSetContains(t *testing.T) {
	id := uuid.New()

	var all domain.IDSet
	assert.True(t, all.Contains(id))

	empty := domain.IDSet{}
	assert.False(t, empty.Contains(id))

	set := domain.IDSet{id}
	assert.True(t, set.Contains(id))
	assert.False(t, set.Contains(uuid.New()))
}
