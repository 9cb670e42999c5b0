package rbac

import (
	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
)

// BuildDataScope computes the data scope for a session user from the
// visibility matrix. It is a pure function of the user snapshot and is
// idempotent: the same snapshot always yields the same scope.
//
// A manager or superintendent with neither a home area nor managed areas
// degrades to self-only visibility. That is a deliberate fail-safe so the
// dashboard always renders, not an error condition.
func BuildDataScope(user *domain.SessionUser) domain.DataScope {
	visibility := VisibilityFor(user.AccessLevel)

	if visibility.CanSeeAllCompanies {
		return domain.DataScope{}
	}

	// Orphaned user: no company means nothing resolves beyond themselves.
	if user.CompanyID == nil {
		return domain.DataScope{
			CompanyIDs: domain.IDSet{},
			AreaIDs:    domain.IDSet{},
			UserIDs:    domain.IDSet{user.ID},
		}
	}

	if visibility.CanSeeAllCompany {
		return domain.DataScope{
			CompanyIDs: domain.IDSet{*user.CompanyID},
		}
	}

	areaIDs := domain.IDSet{}
	if user.AreaID != nil {
		areaIDs = append(areaIDs, *user.AreaID)
	}
	if visibility.CanSeeManagedAreas {
		for _, id := range user.ManagedAreaIDs {
			if !containsID(areaIDs, id) {
				areaIDs = append(areaIDs, id)
			}
		}
	}

	if len(areaIDs) == 0 {
		return domain.DataScope{
			CompanyIDs: domain.IDSet{*user.CompanyID},
			AreaIDs:    domain.IDSet{},
			UserIDs:    domain.IDSet{user.ID},
		}
	}

	return domain.DataScope{
		CompanyIDs: domain.IDSet{*user.CompanyID},
		AreaIDs:    areaIDs,
	}
}

func containsID(ids domain.IDSet, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
